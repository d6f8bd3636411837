// Package province implements the rules engine for Province, a single-player
// territory-conquest puzzle played on a rectangular grid.
//
// The package is pure: it has no I/O, no clock and no UI. Every transformation
// takes a Board value and returns a new one, and all randomness flows through
// the Rand interface so games can be replayed from a seed.
package province

import "fmt"

// MaxGrowingLevel is the highest maturation level of captured territory.
// One more growth step promotes the tile to fortified.
const MaxGrowingLevel = 6

// TileType is the closed set of tile kinds.
type TileType string

const (
	TypeTerritory TileType = "territory"
	TypeFortified TileType = "fortified"
	TypeEnemy     TileType = "enemy"
	TypeObstacle  TileType = "obstacle"
)

// ParseTileType converts a string to a TileType.
func ParseTileType(s string) (TileType, bool) {
	switch TileType(s) {
	case TypeTerritory, TypeFortified, TypeEnemy, TypeObstacle:
		return TileType(s), true
	default:
		return "", false
	}
}

// Valid reports whether t is one of the known tile types.
func (t TileType) Valid() bool {
	_, ok := ParseTileType(string(t))
	return ok
}

// Coord is a 1-indexed board coordinate.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Tile is a single board cell. The JSON field names are the persisted format.
type Tile struct {
	X            int      `json:"x" yaml:"x"`
	Y            int      `json:"y" yaml:"y"`
	Type         TileType `json:"type" yaml:"type"`
	GrowingLevel int      `json:"growingLevel" yaml:"growingLevel"`
	IsCaptured   bool     `json:"isCaptured" yaml:"isCaptured"`
	IsHidden     bool     `json:"isHidden" yaml:"isHidden"`
}

// Coord returns the tile's coordinate.
func (t Tile) Coord() Coord {
	return Coord{X: t.X, Y: t.Y}
}

// NewTile builds an uncovered tile of the given type that obeys the capture
// rule: fortified tiles are captured, everything else starts uncaptured.
func NewTile(x, y int, typ TileType, hidden bool) Tile {
	return Tile{
		X:          x,
		Y:          y,
		Type:       typ,
		IsCaptured: typ == TypeFortified,
		IsHidden:   hidden,
	}
}

// retype changes the tile type and reapplies the capture rule.
func (t *Tile) retype(typ TileType) {
	t.Type = typ
	t.IsCaptured = typ == TypeFortified
	t.GrowingLevel = 0
}

// checkInvariants reports the first per-tile invariant the tile breaks.
func (t Tile) checkInvariants() error {
	if !t.Type.Valid() {
		return fmt.Errorf("tile %s: unknown type %q", t.Coord(), t.Type)
	}
	if t.GrowingLevel < 0 || t.GrowingLevel > MaxGrowingLevel {
		return fmt.Errorf("tile %s: growing level %d out of range", t.Coord(), t.GrowingLevel)
	}
	if !t.IsCaptured && t.GrowingLevel != 0 {
		return fmt.Errorf("tile %s: uncaptured tile has growing level %d", t.Coord(), t.GrowingLevel)
	}
	switch t.Type {
	case TypeFortified:
		if !t.IsCaptured {
			return fmt.Errorf("tile %s: fortified tile must be captured", t.Coord())
		}
		if t.GrowingLevel != 0 {
			return fmt.Errorf("tile %s: fortified tile has growing level %d", t.Coord(), t.GrowingLevel)
		}
	case TypeEnemy, TypeObstacle:
		if t.IsCaptured {
			return fmt.Errorf("tile %s: %s tile cannot be captured", t.Coord(), t.Type)
		}
	}
	return nil
}
