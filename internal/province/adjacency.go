package province

import "math/rand"

// AdjacentCoords returns the up-to-8 Moore neighbours of (x, y) that lie on a
// board of the given size. Order is fixed: dx outer from -1 to 1, dy inner
// from -1 to 1, center skipped.
func AdjacentCoords(x, y int, size Size) []Coord {
	coords := make([]Coord, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if size.InBounds(nx, ny) {
				coords = append(coords, Coord{X: nx, Y: ny})
			}
		}
	}
	return coords
}

// AdjacentTiles filters tiles down to the Moore neighbours of (x, y), in
// AdjacentCoords order. Coordinates missing from tiles are skipped.
func AdjacentTiles(x, y int, size Size, tiles []Tile) []Tile {
	byCoord := make(map[Coord]Tile, len(tiles))
	for _, t := range tiles {
		if _, dup := byCoord[t.Coord()]; !dup {
			byCoord[t.Coord()] = t
		}
	}

	var result []Tile
	for _, c := range AdjacentCoords(x, y, size) {
		if t, ok := byCoord[c]; ok {
			result = append(result, t)
		}
	}
	return result
}

// hasAdjacentType reports whether any neighbour of (x, y) has the given type.
func hasAdjacentType(b Board, x, y int, typ TileType) bool {
	for _, c := range AdjacentCoords(x, y, b.Size()) {
		if b.Tiles[b.index(c.X, c.Y)].Type == typ {
			return true
		}
	}
	return false
}

// Rand is the source of randomness used by the engine.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded random source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
