package sim

import "github.com/vovakirdan/province/internal/province"

// View is what a policy sees before choosing a move.
type View struct {
	Board         province.Board
	ResourcesLeft int
	ResourceLimit int
	FirstMove     bool
	// Refused holds tiles the session turned down, e.g. a hidden fortified tile.
	Refused map[province.Coord]bool
}

// Policy chooses the next tile to select. It returns false when it has no
// legal move.
type Policy interface {
	Choose(v View) (province.Coord, bool)
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(v View) (province.Coord, bool)

func (f PolicyFunc) Choose(v View) (province.Coord, bool) {
	return f(v)
}

// GreedyPolicy harvests when a harvest refunds at least MinRefund and the
// budget has room for it, and otherwise takes the cheapest uncaptured tile.
// Hidden tiles are priced as territory since their type is unknown.
type GreedyPolicy struct {
	MinRefund int
}

// NewGreedyPolicy returns a GreedyPolicy that harvests for a refund of 2 or more.
func NewGreedyPolicy() GreedyPolicy {
	return GreedyPolicy{MinRefund: 2}
}

func (p GreedyPolicy) Choose(v View) (province.Coord, bool) {
	if v.FirstMove {
		return opening(v)
	}

	if at, refund := bestHarvest(v.Board); refund >= max(p.MinRefund, 1) && v.ResourcesLeft < v.ResourceLimit {
		return at, true
	}

	var (
		best     province.Coord
		bestCost int
		bestNear int
		found    bool
	)
	for _, t := range v.Board.Tiles {
		if v.Refused[t.Coord()] {
			continue
		}
		cost, ok := estimateCost(v.Board, t)
		if !ok {
			continue
		}
		near := capturedNeighbours(v.Board, t.X, t.Y)
		if !found || cost < bestCost || (cost == bestCost && near > bestNear) {
			best, bestCost, bestNear, found = t.Coord(), cost, near, true
		}
	}
	return best, found
}

// opening picks the first visible territory tile, falling back to any tile
// the player may select.
func opening(v View) (province.Coord, bool) {
	var fallback *province.Tile
	for i := range v.Board.Tiles {
		t := &v.Board.Tiles[i]
		if v.Refused[t.Coord()] || (!t.IsHidden && (t.Type == province.TypeFortified || t.Type == province.TypeObstacle)) {
			continue
		}
		if t.Type == province.TypeTerritory && !t.IsHidden {
			return t.Coord(), true
		}
		if fallback == nil {
			fallback = t
		}
	}
	if fallback == nil {
		return province.Coord{}, false
	}
	return fallback.Coord(), true
}

// bestHarvest returns the ripe tile whose harvest refunds the most.
func bestHarvest(b province.Board) (province.Coord, int) {
	var (
		best       province.Coord
		bestRefund = -1
	)
	for _, t := range b.Tiles {
		if t.Type != province.TypeTerritory || !t.IsCaptured || t.GrowingLevel != province.MaxGrowingLevel {
			continue
		}
		refund := 0
		for _, n := range b.Adjacent(t.X, t.Y) {
			if n.Type == province.TypeTerritory && n.IsCaptured && n.GrowingLevel > 0 {
				refund += province.HarvestRefundPerTile
			}
		}
		if refund > bestRefund {
			best, bestRefund = t.Coord(), refund
		}
	}
	return best, bestRefund
}

// estimateCost prices capturing t. It reports false for tiles that are not
// worth selecting: already captured or never selectable.
func estimateCost(b province.Board, t province.Tile) (int, bool) {
	if t.IsHidden {
		return province.CaptureCost, true
	}
	switch t.Type {
	case province.TypeTerritory:
		if t.IsCaptured {
			return 0, false
		}
		return province.CaptureCost, true
	case province.TypeEnemy:
		for _, n := range b.Adjacent(t.X, t.Y) {
			if n.Type == province.TypeFortified {
				return province.RetakeFortifiedCost, true
			}
		}
		return province.RetakeCost, true
	default:
		return 0, false
	}
}

func capturedNeighbours(b province.Board, x, y int) int {
	n := 0
	for _, t := range b.Adjacent(x, y) {
		if t.IsCaptured {
			n++
		}
	}
	return n
}
