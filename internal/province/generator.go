package province

import (
	"errors"
	"fmt"
)

// ErrUnknownFillType is returned when a config names a fill type the
// generator does not implement.
var ErrUnknownFillType = errors.New("unknown fill type")

// ErrFillOverflow is returned when fixed counts do not fit the free cells.
var ErrFillOverflow = errors.New("fixed fill does not fit the board")

// GenerateBoard builds the opening board for cfg.
// Seed tiles from InitialTileStates are copied verbatim; every other cell is
// filled according to FillConfig. With fog of war, non-seed tiles start
// hidden and the neighbourhood of every fortified tile is revealed.
//
// cfg is expected to have passed ValidateConfig.
func GenerateBoard(cfg GameConfig, rng Rand) (Board, error) {
	size := cfg.BoardSize
	g := &generator{
		cfg:   cfg,
		rng:   rng,
		board: Board{Width: size.Width, Height: size.Height, Tiles: make([]Tile, size.Area())},
		seed:  make([]bool, size.Area()),
	}

	for _, t := range cfg.InitialTileStates {
		if !size.InBounds(t.X, t.Y) {
			continue
		}
		i := g.board.index(t.X, t.Y)
		g.board.Tiles[i] = t
		g.seed[i] = true
	}

	var err error
	switch cfg.FillConfig.Type {
	case FillProbabilities:
		if cfg.FillConfig.Probabilities == nil {
			return Board{}, fmt.Errorf("%w: probabilities fill without probabilities", ErrUnknownFillType)
		}
		g.fillProbabilities()
		g.repairClamps()
	case FillFixed:
		if cfg.FillConfig.Numbers == nil {
			return Board{}, fmt.Errorf("%w: fixed fill without numbers", ErrUnknownFillType)
		}
		err = g.fillFixed()
	default:
		return Board{}, fmt.Errorf("%w: %q", ErrUnknownFillType, cfg.FillConfig.Type)
	}
	if err != nil {
		return Board{}, err
	}

	if cfg.FogOfWar {
		g.revealAroundFortified()
	}
	return g.board, nil
}

type generator struct {
	cfg   GameConfig
	rng   Rand
	board Board
	seed  []bool
}

// place writes a freshly generated tile at index i.
func (g *generator) place(i int, typ TileType) {
	x := i%g.board.Width + 1
	y := i/g.board.Width + 1
	g.board.Tiles[i] = NewTile(x, y, typ, g.cfg.FogOfWar)
}

// fillProbabilities draws one uniform number per free cell and maps it onto
// cumulative bands in the order territory, fortified, enemy, obstacle.
func (g *generator) fillProbabilities() {
	p := g.cfg.FillConfig.Probabilities
	bands := []struct {
		typ    TileType
		weight float64
	}{
		{TypeTerritory, p.Territory},
		{TypeFortified, p.Fortified},
		{TypeEnemy, p.Enemy},
		{TypeObstacle, p.Obstacle},
	}

	// Draws that land past the cumulative sum because of rounding go to the
	// last band that has any weight.
	fallback := TypeTerritory
	for _, b := range bands {
		if b.weight > 0 {
			fallback = b.typ
		}
	}

	for i := range g.board.Tiles {
		if g.seed[i] {
			continue
		}
		r := g.rng.Float64()
		typ := fallback
		cum := 0.0
		for _, b := range bands {
			cum += b.weight
			if b.weight > 0 && r < cum {
				typ = b.typ
				break
			}
		}
		g.place(i, typ)
	}
}

// fillFixed scatters exact counts by rejection sampling over random
// coordinates, skipping seeds and cells already chosen.
func (g *generator) fillFixed() error {
	n := g.cfg.FillConfig.Numbers
	free := 0
	for _, s := range g.seed {
		if !s {
			free++
		}
	}
	if n.Fortified+n.Enemy+n.Obstacle > free {
		return fmt.Errorf("%w: %d tiles requested, %d free", ErrFillOverflow, n.Fortified+n.Enemy+n.Obstacle, free)
	}

	chosen := make(map[int]TileType, n.Fortified+n.Enemy+n.Obstacle)
	pick := func(count int, typ TileType) {
		for placed := 0; placed < count; {
			x := g.rng.Intn(g.board.Width) + 1
			y := g.rng.Intn(g.board.Height) + 1
			i := g.board.index(x, y)
			if g.seed[i] {
				continue
			}
			if _, taken := chosen[i]; taken {
				continue
			}
			chosen[i] = typ
			placed++
		}
	}
	pick(n.Fortified, TypeFortified)
	pick(n.Enemy, TypeEnemy)
	pick(n.Obstacle, TypeObstacle)

	for i := range g.board.Tiles {
		if g.seed[i] {
			continue
		}
		typ, ok := chosen[i]
		if !ok {
			typ = TypeTerritory
		}
		g.place(i, typ)
	}
	return nil
}

// repairClamps converts uniformly chosen non-seed tiles until every clamped
// type count is inside its band, or no donor of the needed type remains.
func (g *generator) repairClamps() {
	p := g.cfg.FillConfig.Probabilities
	clamps := []struct {
		typ      TileType
		min, max *int
	}{
		{TypeFortified, p.MinFortified, p.MaxFortified},
		{TypeEnemy, p.MinEnemy, p.MaxEnemy},
		{TypeObstacle, p.MinObstacle, p.MaxObstacle},
	}

	for _, c := range clamps {
		if c.min != nil {
			for g.board.CountType(c.typ) < *c.min {
				if !g.convertRandom(TypeTerritory, c.typ) {
					break
				}
			}
		}
		if c.max != nil {
			for g.board.CountType(c.typ) > *c.max {
				if !g.convertRandom(c.typ, TypeTerritory) {
					break
				}
			}
		}
	}
}

// convertRandom turns one uniformly chosen non-seed tile of type from into
// type to. It returns false when no such tile exists.
func (g *generator) convertRandom(from, to TileType) bool {
	var donors []int
	for i, t := range g.board.Tiles {
		if !g.seed[i] && t.Type == from {
			donors = append(donors, i)
		}
	}
	if len(donors) == 0 {
		return false
	}
	i := donors[g.rng.Intn(len(donors))]
	g.board.Tiles[i].retype(to)
	return true
}

// revealAroundFortified uncovers every fortified tile and its neighbours.
func (g *generator) revealAroundFortified() {
	b := g.board
	for _, t := range b.Tiles {
		if t.Type != TypeFortified {
			continue
		}
		b.ptr(t.X, t.Y).IsHidden = false
		for _, c := range AdjacentCoords(t.X, t.Y, b.Size()) {
			b.ptr(c.X, c.Y).IsHidden = false
		}
	}
}
