package province

import (
	"fmt"
	"strings"
)

// scriptedRand replays fixed draws and panics when it runs dry, so tests
// notice unexpected randomness.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		panic("scriptedRand: unexpected Float64 call")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		panic("scriptedRand: unexpected Intn call")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		panic(fmt.Sprintf("scriptedRand: scripted %d out of range for Intn(%d)", v, n))
	}
	return v
}

// parseBoard builds a board from rows separated by spaces, top row first.
//
//	.  uncaptured territory
//	0-6 captured territory at that growing level
//	F  fortified
//	E  enemy
//	O  obstacle
//	?  hidden uncaptured territory
func parseBoard(rows ...string) Board {
	var cells [][]string
	for _, r := range rows {
		cells = append(cells, strings.Fields(r))
	}
	h := len(cells)
	w := len(cells[0])
	b := Board{Width: w, Height: h, Tiles: make([]Tile, 0, w*h)}
	for y, row := range cells {
		if len(row) != w {
			panic("parseBoard: ragged rows")
		}
		for x, cell := range row {
			t := NewTile(x+1, y+1, TypeTerritory, false)
			switch cell {
			case ".":
			case "?":
				t.IsHidden = true
			case "F":
				t = NewTile(x+1, y+1, TypeFortified, false)
			case "E":
				t = NewTile(x+1, y+1, TypeEnemy, false)
			case "O":
				t = NewTile(x+1, y+1, TypeObstacle, false)
			default:
				if len(cell) != 1 || cell[0] < '0' || cell[0] > '6' {
					panic("parseBoard: unknown cell " + cell)
				}
				t.IsCaptured = true
				t.GrowingLevel = int(cell[0] - '0')
			}
			b.Tiles = append(b.Tiles, t)
		}
	}
	return b
}

func mustTile(b Board, x, y int) Tile {
	t, ok := b.At(x, y)
	if !ok {
		panic(fmt.Sprintf("no tile at (%d,%d)", x, y))
	}
	return t
}

func baseConfig() GameConfig {
	return GameConfig{
		Name:            "test",
		BoardSize:       S(8, 8),
		ResourceLimit:   10,
		TimeLimit:       -1,
		EnemyAggression: 0.5,
		FillConfig: FillConfig{
			Type: FillProbabilities,
			Probabilities: &Probabilities{
				Territory: 0.9,
				Fortified: 0.05,
				Enemy:     0.05,
			},
		},
	}
}
