// Package sim plays Province games headlessly. It is used to check that
// presets are winnable and to compare policies.
package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/province/internal/province"
	"github.com/vovakirdan/province/internal/session"
)

var (
	// ErrInvalidConfig is returned when the session refuses the config.
	ErrInvalidConfig = errors.New("sim: invalid game config")

	// ErrStalled is returned when a game exceeds its move cap.
	ErrStalled = errors.New("sim: game did not finish")

	// ErrNoMove is returned when the policy gives up on an ongoing game.
	ErrNoMove = errors.New("sim: policy has no move")
)

// Result is the record of one simulated game.
type Result struct {
	Config        province.GameConfig
	Outcome       province.Status
	Moves         int
	ResourcesLeft int
	Harvests      int
	Board         province.Board
}

// Won reports whether the player won.
func (r Result) Won() bool {
	return r.Outcome == province.StatusPlayerWon
}

// Play runs one game of cfg to the end, settling the end sequence without
// delays. The session keeps its snapshot in memory.
func Play(cfg province.GameConfig, rng province.Rand, policy Policy) (Result, error) {
	var summary *session.Summary
	s := session.New(
		session.WithRand(rng),
		session.WithGameOverHook(func(sum session.Summary) { summary = &sum }),
	)
	if !s.NewGame(cfg) {
		return Result{}, ErrInvalidConfig
	}

	res := Result{Config: cfg}
	refused := map[province.Coord]bool{}
	limit := cfg.BoardSize.Area() * 20
	for moves := 0; ; moves++ {
		st := s.State()
		if st.Status != province.StatusOngoing {
			break
		}
		if moves >= limit {
			return res, fmt.Errorf("%w after %d moves", ErrStalled, moves)
		}

		at, ok := policy.Choose(View{
			Board:         st.TileStates,
			ResourcesLeft: st.ResourcesLeft,
			ResourceLimit: cfg.ResourceLimit,
			FirstMove:     st.FirstMove,
			Refused:       refused,
		})
		if !ok {
			return res, ErrNoMove
		}
		turn, err := s.SelectTile(at.X, at.Y)
		if errors.Is(err, session.ErrNotSelectable) {
			refused[at] = true
			continue
		}
		if err != nil {
			return res, fmt.Errorf("sim: move %d at %s: %w", moves+1, at, err)
		}
		if !turn.Grew {
			res.Harvests++
		}
	}

	if err := s.SettleEndSequence(); err != nil {
		return res, err
	}
	if summary == nil {
		return res, fmt.Errorf("%w: no game-over summary", ErrStalled)
	}
	res.Outcome = summary.Outcome
	res.Moves = summary.Moves
	res.ResourcesLeft = summary.ResourcesLeft
	res.Board = summary.Board
	return res, nil
}

// Report aggregates a batch of simulated games.
type Report struct {
	Games             int
	Won               int
	Lost              int
	Stalled           int // Games cut off by the move cap, not in Games
	WinRate           float64
	MeanMoves         float64
	MeanResourcesLeft float64
}

// Run plays n games, each drawn from presets in turn, and aggregates the
// results. Stalled games are counted apart and left out of the rates.
// onGame, if non-nil, is called after every finished game.
func Run(n int, presets []province.GameConfig, seed int64, policy Policy, onGame func(i int, r Result)) (Report, error) {
	var rep Report
	if len(presets) == 0 {
		return rep, ErrInvalidConfig
	}

	rng := province.NewRand(seed)
	var moves, resources int
	for i := 0; i < n; i++ {
		r, err := Play(presets[i%len(presets)], rng, policy)
		if errors.Is(err, ErrStalled) {
			rep.Stalled++
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("game %d: %w", i+1, err)
		}
		rep.Games++
		if r.Won() {
			rep.Won++
		} else {
			rep.Lost++
		}
		moves += r.Moves
		resources += r.ResourcesLeft
		if onGame != nil {
			onGame(i, r)
		}
	}

	if rep.Games > 0 {
		rep.WinRate = float64(rep.Won) / float64(rep.Games)
		rep.MeanMoves = float64(moves) / float64(rep.Games)
		rep.MeanResourcesLeft = float64(resources) / float64(rep.Games)
	}
	return rep, nil
}
