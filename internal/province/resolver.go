package province

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/province/internal/core"
)

// ErrTileNotOnBoard is returned when a turn targets a coordinate outside the
// board. It indicates a caller bug, not a player mistake.
var ErrTileNotOnBoard = errors.New("tile not on board")

// Move costs.
const (
	CaptureCost          = 1
	RetakeCost           = 2
	RetakeFortifiedCost  = 1
	HarvestRefundPerTile = 1
)

// Turn is the input of a single move.
type Turn struct {
	Board         Board
	ResourcesLeft int
	ResourceLimit int
	FirstMove     bool
}

// TurnResult is the outcome of a single move.
type TurnResult struct {
	Board         Board
	ResourcesLeft int
	// Cost is the resource delta before clamping. Negative for a harvest refund.
	Cost int
	// Harvested lists neighbours whose growing level was reset by a harvest.
	Harvested []Coord
	// Revealed lists tiles that were hidden before the move.
	Revealed []Coord
	// Grew reports whether growth and adversary expansion ran.
	Grew      bool
	FirstMove bool
	Outcome   Status
}

// ResolveTurn applies a selection at the given coordinate.
// It does not gate on tile type or session state; that is the caller's job.
func ResolveTurn(turn Turn, at Coord, rng Rand) (TurnResult, error) {
	if !turn.Board.InBounds(at.X, at.Y) {
		return TurnResult{}, fmt.Errorf("%w: %s on a %s board", ErrTileNotOnBoard, at, turn.Board.Size())
	}

	board := turn.Board.Clone()
	tile := board.ptr(at.X, at.Y)
	res := TurnResult{Grew: true}

	// The opening move is always a plain capture.
	if turn.FirstMove {
		tile.retype(TypeTerritory)
	}

	if tile.IsHidden {
		tile.IsHidden = false
		res.Revealed = append(res.Revealed, at)
	}

	cost := CaptureCost
	switch tile.Type {
	case TypeTerritory:
		switch {
		case !tile.IsCaptured:
			tile.IsCaptured = true
			tile.GrowingLevel = 0
		case tile.GrowingLevel == MaxGrowingLevel:
			cost = 0
			for _, c := range AdjacentCoords(at.X, at.Y, board.Size()) {
				n := board.ptr(c.X, c.Y)
				if n.Type == TypeTerritory && n.IsCaptured && n.GrowingLevel > 0 && n.GrowingLevel <= MaxGrowingLevel {
					n.GrowingLevel = 0
					cost -= HarvestRefundPerTile
					res.Harvested = append(res.Harvested, c)
				}
			}
			tile.GrowingLevel = 0
			res.Grew = false
		default:
			tile.GrowingLevel = 0
		}
	case TypeEnemy:
		cost = RetakeCost
		if hasAdjacentType(board, at.X, at.Y, TypeFortified) {
			cost = RetakeFortifiedCost
		}
		tile.retype(TypeTerritory)
		tile.IsCaptured = true
	case TypeFortified, TypeObstacle:
		cost = 0
	}

	for _, c := range AdjacentCoords(at.X, at.Y, board.Size()) {
		n := board.ptr(c.X, c.Y)
		if n.IsHidden {
			n.IsHidden = false
			res.Revealed = append(res.Revealed, c)
		}
	}

	if res.Grew {
		board = ProgressTerritoryGrowth(board, at)
		board = AdvanceEnemyTiles(board, rng, DefaultExpansionChance, at)
	}

	res.Board = board
	res.Cost = cost
	res.ResourcesLeft = core.Clamp(turn.ResourcesLeft-cost, 0, turn.ResourceLimit)
	res.FirstMove = false
	res.Outcome = IsGameOver(res.ResourcesLeft, board)
	return res, nil
}
