package province

import (
	"errors"
	"fmt"
	"time"
)

// End sequence pacing.
const (
	EndStepDelayStart = 300 * time.Millisecond
	EndStepDelayDecay = 10 * time.Millisecond
	EndStepDelayFloor = 50 * time.Millisecond
)

// ErrSettleStalled is returned by Settle when the sequence exceeds its step
// cap. Boards that satisfy the tile invariants always settle before the cap.
var ErrSettleStalled = errors.New("end sequence did not settle")

// EndSequence advances a finished game to its resting board.
// Each step grows territory and, when the enemy won, forces one adversary
// expansion. The caller owns the timing: Next returns the delay to wait
// before the following step.
type EndSequence struct {
	board   Board
	outcome Status
	rng     Rand
	steps   int
}

// NewEndSequence starts a sequence from b for a terminal outcome.
func NewEndSequence(b Board, outcome Status, rng Rand) *EndSequence {
	return &EndSequence{
		board:   b.Clone(),
		outcome: outcome,
		rng:     rng,
	}
}

// Outcome returns the terminal outcome being settled.
func (s *EndSequence) Outcome() Status {
	return s.outcome
}

// Done reports whether the board has reached its resting state.
// A player win rests once everything is fortified; an enemy win rests once
// the adversary has no captured territory left to take.
func (s *EndSequence) Done() bool {
	switch s.outcome {
	case StatusPlayerWon:
		return AllFortified(s.board)
	case StatusEnemyWon:
		return !EnemyCanAdvance(s.board)
	default:
		return true
	}
}

// Next applies one step and returns the new board with the delay the caller
// should wait before calling Next again. Calling Next when Done is a no-op.
func (s *EndSequence) Next() (Board, time.Duration) {
	if s.Done() {
		return s.board.Clone(), 0
	}
	next := ProgressTerritoryGrowth(s.board)
	if s.outcome == StatusEnemyWon {
		next = AdvanceEnemyTiles(next, s.rng, 1)
	}
	s.board = next
	s.steps++
	return s.board.Clone(), StepDelay(s.steps)
}

// Board returns a copy of the current board.
func (s *EndSequence) Board() Board {
	return s.board.Clone()
}

// Steps returns the number of steps applied so far.
func (s *EndSequence) Steps() int {
	return s.steps
}

// StepDelay returns the pause after the given step number (1-based).
func StepDelay(step int) time.Duration {
	d := EndStepDelayStart - time.Duration(step-1)*EndStepDelayDecay
	return max(d, EndStepDelayFloor)
}

// Settle runs an end sequence to completion without waiting and returns the
// resting board. onStep, if non-nil, receives every intermediate board.
func Settle(b Board, outcome Status, rng Rand, onStep func(Board)) (Board, error) {
	seq := NewEndSequence(b, outcome, rng)
	limit := b.Size().Area() * (MaxGrowingLevel + 2)
	for !seq.Done() {
		if seq.Steps() >= limit {
			return seq.Board(), fmt.Errorf("%w after %d steps", ErrSettleStalled, seq.Steps())
		}
		next, _ := seq.Next()
		if onStep != nil {
			onStep(next)
		}
	}
	return seq.Board(), nil
}
