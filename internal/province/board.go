package province

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Size is a board dimension pair. It is encoded as [width, height].
type Size struct {
	Width  int
	Height int
}

// S is a convenience constructor for Size.
func S(w, h int) Size {
	return Size{Width: w, Height: h}
}

// Area returns the number of cells.
func (s Size) Area() int {
	return s.Width * s.Height
}

// InBounds returns true if the coordinate lies inside [1,Width] x [1,Height].
func (s Size) InBounds(x, y int) bool {
	return x >= 1 && x <= s.Width && y >= 1 && y <= s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// MarshalJSON encodes the size as a two-element array.
func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Width, s.Height})
}

// UnmarshalJSON decodes a two-element array.
func (s *Size) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("board size: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("board size: want [width, height], got %d values", len(pair))
	}
	s.Width, s.Height = pair[0], pair[1]
	return nil
}

// MarshalYAML encodes the size as a two-element sequence.
func (s Size) MarshalYAML() (any, error) {
	return []int{s.Width, s.Height}, nil
}

// UnmarshalYAML decodes a two-element sequence.
func (s *Size) UnmarshalYAML(unmarshal func(any) error) error {
	var pair []int
	if err := unmarshal(&pair); err != nil {
		return fmt.Errorf("board size: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("board size: want [width, height], got %d values", len(pair))
	}
	s.Width, s.Height = pair[0], pair[1]
	return nil
}

// Board is the full tile grid.
// Tiles are stored in row-major order: index = (y-1)*Width + (x-1).
// A Board is a value: transformations clone it and return the copy.
type Board struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewBoard creates a board of uncaptured, revealed territory.
func NewBoard(w, h int) Board {
	b := Board{
		Width:  w,
		Height: h,
		Tiles:  make([]Tile, 0, w*h),
	}
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			b.Tiles = append(b.Tiles, NewTile(x, y, TypeTerritory, false))
		}
	}
	return b
}

// BoardFromTiles builds a board from an unordered tile list.
// The list must hold exactly one structurally valid tile per coordinate.
func BoardFromTiles(size Size, tiles []Tile) (Board, error) {
	if err := ValidateTileSet(tiles, size); err != nil {
		return Board{}, err
	}
	sorted := make([]Tile, len(tiles))
	copy(sorted, tiles)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})
	return Board{Width: size.Width, Height: size.Height, Tiles: sorted}, nil
}

// Size returns the board dimensions.
func (b Board) Size() Size {
	return Size{Width: b.Width, Height: b.Height}
}

// index converts a coordinate to a flat array index.
func (b Board) index(x, y int) int {
	return (y-1)*b.Width + (x - 1)
}

// InBounds returns true if the coordinate is on the board.
func (b Board) InBounds(x, y int) bool {
	return b.Size().InBounds(x, y)
}

// At returns the tile at the given coordinate.
func (b Board) At(x, y int) (Tile, bool) {
	if !b.InBounds(x, y) {
		return Tile{}, false
	}
	return b.Tiles[b.index(x, y)], true
}

// ptr returns a pointer into the board's own tile slice.
func (b Board) ptr(x, y int) *Tile {
	return &b.Tiles[b.index(x, y)]
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	tiles := make([]Tile, len(b.Tiles))
	copy(tiles, b.Tiles)
	return Board{
		Width:  b.Width,
		Height: b.Height,
		Tiles:  tiles,
	}
}

// Adjacent returns the Moore neighbours of (x, y) in AdjacentCoords order.
func (b Board) Adjacent(x, y int) []Tile {
	coords := AdjacentCoords(x, y, b.Size())
	tiles := make([]Tile, 0, len(coords))
	for _, c := range coords {
		tiles = append(tiles, b.Tiles[b.index(c.X, c.Y)])
	}
	return tiles
}

// Count returns the number of tiles matching the predicate.
func (b Board) Count(match func(Tile) bool) int {
	n := 0
	for _, t := range b.Tiles {
		if match(t) {
			n++
		}
	}
	return n
}

// CountType returns the number of tiles of the given type.
func (b Board) CountType(typ TileType) int {
	return b.Count(func(t Tile) bool { return t.Type == typ })
}

// Equal returns true if two boards have the same dimensions and tiles.
func (b Board) Equal(other Board) bool {
	if b.Width != other.Width || b.Height != other.Height || len(b.Tiles) != len(other.Tiles) {
		return false
	}
	for i, t := range b.Tiles {
		if t != other.Tiles[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the board as its flat tile list.
func (b Board) MarshalJSON() ([]byte, error) {
	if b.Tiles == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.Tiles)
}

// UnmarshalJSON decodes a flat tile list. The tiles are kept in stored order
// and the dimensions are inferred from the largest coordinates; callers that
// index the board must pass it through BoardFromTiles first.
func (b *Board) UnmarshalJSON(data []byte) error {
	var tiles []Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		return fmt.Errorf("tiles: %w", err)
	}
	b.Tiles = tiles
	b.Width, b.Height = 0, 0
	for _, t := range tiles {
		b.Width = max(b.Width, t.X)
		b.Height = max(b.Height, t.Y)
	}
	return nil
}

// ErrInvalidTileSet is wrapped by every ValidateTileSet failure.
var ErrInvalidTileSet = errors.New("invalid tile set")

// ValidateTileSet checks that tiles cover size exactly once per coordinate and
// that every tile is structurally sound.
func ValidateTileSet(tiles []Tile, size Size) error {
	if size.Width < 1 || size.Height < 1 {
		return fmt.Errorf("%w: board size %s", ErrInvalidTileSet, size)
	}
	if len(tiles) != size.Area() {
		return fmt.Errorf("%w: %d tiles for a %s board", ErrInvalidTileSet, len(tiles), size)
	}
	seen := make(map[Coord]bool, len(tiles))
	for _, t := range tiles {
		if !size.InBounds(t.X, t.Y) {
			return fmt.Errorf("%w: tile %s out of bounds", ErrInvalidTileSet, t.Coord())
		}
		if seen[t.Coord()] {
			return fmt.Errorf("%w: duplicate tile %s", ErrInvalidTileSet, t.Coord())
		}
		seen[t.Coord()] = true
		if err := t.checkInvariants(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTileSet, err)
		}
	}
	return nil
}
