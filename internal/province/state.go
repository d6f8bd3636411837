package province

import (
	"errors"
	"fmt"
)

// GameState is the live, mutable part of a game.
type GameState struct {
	Status            Status `json:"status"`
	TileStates        Board  `json:"tileStates"`
	InitialTileStates []Tile `json:"initialTileStates"`
	ResourcesLeft     int    `json:"resourcesLeft"`
	ElapsedTime       int    `json:"elapsedTime"`
	FirstMove         bool   `json:"firstMove"`
	MovesEnabled      bool   `json:"movesEnabled"`
	IsPaused          bool   `json:"isPaused"`
	Moves             int    `json:"moves"`
}

// NewGameState creates the opening state for a freshly generated board.
func NewGameState(cfg GameConfig, b Board) GameState {
	initial := make([]Tile, len(b.Tiles))
	copy(initial, b.Tiles)

	elapsed := 0
	if !cfg.CountUp() {
		elapsed = cfg.TimeLimit
	}
	return GameState{
		Status:            StatusOngoing,
		TileStates:        b.Clone(),
		InitialTileStates: initial,
		ResourcesLeft:     cfg.ResourceLimit,
		ElapsedTime:       elapsed,
		FirstMove:         true,
		MovesEnabled:      true,
	}
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	out := s
	out.TileStates = s.TileStates.Clone()
	if s.InitialTileStates != nil {
		out.InitialTileStates = make([]Tile, len(s.InitialTileStates))
		copy(out.InitialTileStates, s.InitialTileStates)
	}
	return out
}

// Snapshot is the persisted unit: the config and the state that grew from it.
type Snapshot struct {
	Config GameConfig `json:"gameConfig"`
	State  GameState  `json:"gameState"`
}

// ErrInvalidSnapshot is wrapped by every Snapshot.Validate failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Validate checks that a decoded snapshot can be resumed.
func (s Snapshot) Validate() error {
	size := s.Config.BoardSize
	if size.Width < 1 || size.Height < 1 {
		return fmt.Errorf("%w: board size %s", ErrInvalidSnapshot, size)
	}
	switch s.State.Status {
	case StatusOngoing, StatusAnimating, StatusPlayerWon, StatusEnemyWon:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidSnapshot, s.State.Status)
	}
	if err := ValidateTileSet(s.State.TileStates.Tiles, size); err != nil {
		return fmt.Errorf("%w: tile states: %w", ErrInvalidSnapshot, err)
	}
	if len(s.State.InitialTileStates) > 0 {
		if err := ValidateTileSet(s.State.InitialTileStates, size); err != nil {
			return fmt.Errorf("%w: initial tile states: %w", ErrInvalidSnapshot, err)
		}
	}
	return nil
}

// Normalize validates the snapshot and returns a copy whose board is indexed
// in row-major order and ready for play.
func (s Snapshot) Normalize() (Snapshot, error) {
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	board, err := BoardFromTiles(s.Config.BoardSize, s.State.TileStates.Tiles)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	out := Snapshot{Config: s.Config.Clone(), State: s.State.Clone()}
	out.State.TileStates = board
	return out, nil
}
