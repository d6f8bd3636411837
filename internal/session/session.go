// Package session owns a single Province game: the authoritative config and
// state, the one-second timer, the end sequence and persistence.
//
// A Session is the only thing a front end talks to. Turns and timer ticks
// are the two writers; both run under the session mutex, and MovesEnabled is
// cleared while the board is paused or animating so no turn is accepted
// until the end sequence has finished.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/province/internal/province"
)

var (
	// ErrMovesDisabled is returned when a tile is selected while moves are
	// gated: paused, animating or finished.
	ErrMovesDisabled = errors.New("moves are disabled")

	// ErrNotSelectable is returned for fortified and obstacle tiles.
	ErrNotSelectable = errors.New("tile cannot be selected")

	// ErrNoGame is returned when an operation needs a game and none exists.
	ErrNoGame = errors.New("no game in progress")
)

// Summary describes a finished game. It is passed to the game-over hook.
type Summary struct {
	Config        province.GameConfig
	Outcome       province.Status
	ResourcesLeft int
	Moves         int
	Elapsed       int // Seconds played
	Board         province.Board
}

// Session is a single game in progress.
type Session struct {
	mu sync.Mutex

	storage    Storage
	logger     *log.Logger
	rng        province.Rand
	presets    []province.GameConfig
	onGameOver func(Summary)

	config province.GameConfig
	state  province.GameState
	seq    *province.EndSequence
}

// Option configures a Session.
type Option func(*Session)

// WithStorage sets where snapshots are persisted. Defaults to memory.
func WithStorage(s Storage) Option {
	return func(sess *Session) {
		sess.storage = s
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(sess *Session) {
		sess.logger = l
	}
}

// WithRand sets the random source used for boards and the adversary.
func WithRand(r province.Rand) Option {
	return func(sess *Session) {
		sess.rng = r
	}
}

// WithPresets sets the configs a fresh random game is drawn from.
func WithPresets(presets []province.GameConfig) Option {
	return func(sess *Session) {
		sess.presets = presets
	}
}

// WithGameOverHook registers a callback fired once per finished game, after
// the end sequence settles.
func WithGameOverHook(fn func(Summary)) Option {
	return func(sess *Session) {
		sess.onGameOver = fn
	}
}

// New creates a Session with no game. Call LoadGame or NewGame next.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.storage == nil {
		s.storage = NewMemoryStorage()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.rng == nil {
		s.rng = province.NewRand(time.Now().UnixNano())
	}
	if len(s.presets) == 0 {
		s.presets = []province.GameConfig{province.DefaultConfig()}
	}
	return s
}

// LoadGame restores the persisted snapshot, or starts a random preset when
// there is none or it is unusable. It reports whether a snapshot was restored.
// A snapshot saved mid-animation resumes its end sequence.
func (s *Session) LoadGame() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.readSnapshot()
	if err != nil {
		s.logger.Warn("discarding saved game", "error", err)
		return false, s.startRandom()
	}
	if snap == nil {
		s.logger.Info("no saved game, starting a new one")
		return false, s.startRandom()
	}

	s.config = snap.Config
	s.state = snap.State
	s.seq = nil

	switch s.state.Status {
	case province.StatusAnimating:
		outcome := province.IsGameOver(s.state.ResourcesLeft, s.state.TileStates)
		if outcome == province.StatusOngoing && s.timedOut() {
			outcome = province.StatusEnemyWon
		}
		if outcome == province.StatusOngoing {
			s.state.Status = province.StatusOngoing
			s.state.MovesEnabled = !s.state.IsPaused
		} else {
			s.seq = province.NewEndSequence(s.state.TileStates, outcome, s.rng)
			s.state.MovesEnabled = false
		}
	case province.StatusOngoing:
		s.state.MovesEnabled = !s.state.IsPaused
	default:
		s.state.MovesEnabled = false
	}

	s.logger.Info("restored saved game", "name", s.config.Name, "status", s.state.Status)
	return true, nil
}

// readSnapshot loads and validates the stored snapshot. It returns nil, nil
// when nothing is stored.
func (s *Session) readSnapshot() (*province.Snapshot, error) {
	var raw province.Snapshot
	foundCfg, err := s.storage.Get(KeyGameConfig, &raw.Config)
	if err != nil {
		return nil, err
	}
	foundState, err := s.storage.Get(KeyGameState, &raw.State)
	if err != nil {
		return nil, err
	}
	if !foundCfg || !foundState {
		return nil, nil
	}
	if errs := province.ValidateConfig(raw.Config); len(errs) > 0 {
		return nil, fmt.Errorf("%w: config: %v", province.ErrInvalidSnapshot, errs[0])
	}
	snap, err := raw.Normalize()
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// startRandom begins a game from a uniformly chosen preset.
func (s *Session) startRandom() error {
	return s.start(s.presets[s.rng.Intn(len(s.presets))])
}

// start replaces the current game. The caller validates cfg.
func (s *Session) start(cfg province.GameConfig) error {
	board, err := province.GenerateBoard(cfg, s.rng)
	if err != nil {
		return fmt.Errorf("session: generate board: %w", err)
	}
	s.config = cfg.Clone()
	s.state = province.NewGameState(cfg, board)
	s.seq = nil
	s.logger.Debug("new game", "name", cfg.Name, "size", cfg.BoardSize.String())
	s.persist()
	return nil
}

// NewGame starts a game from cfg. It returns false, leaving the current game
// untouched, when cfg is invalid or an end sequence is running.
func (s *Session) NewGame(cfg province.GameConfig) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == province.StatusAnimating {
		return false
	}
	if errs := province.ValidateConfig(cfg); len(errs) > 0 {
		s.logger.Warn("rejected game config", "name", cfg.Name, "error", errs[0])
		return false
	}
	if err := s.start(cfg); err != nil {
		s.logger.Error("cannot start game", "error", err)
		return false
	}
	return true
}

// NewRandomGame starts a game from a random preset.
func (s *Session) NewRandomGame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == province.StatusAnimating {
		return false
	}
	if err := s.startRandom(); err != nil {
		s.logger.Error("cannot start game", "error", err)
		return false
	}
	return true
}

// RestartGame replays the current game from its recorded opening board.
func (s *Session) RestartGame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == province.StatusAnimating || s.state.Status == "" {
		return false
	}
	board, err := province.BoardFromTiles(s.config.BoardSize, s.state.InitialTileStates)
	if err != nil {
		s.logger.Warn("no usable opening board, generating a new one", "error", err)
		if err := s.start(s.config); err != nil {
			s.logger.Error("cannot restart game", "error", err)
			return false
		}
		return true
	}
	s.state = province.NewGameState(s.config, board)
	s.seq = nil
	s.persist()
	return true
}

// SelectTile plays a turn at (x, y).
func (s *Session) SelectTile(x, y int) (province.TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == "" {
		return province.TurnResult{}, ErrNoGame
	}
	if !s.state.MovesEnabled || s.state.Status != province.StatusOngoing {
		return province.TurnResult{}, ErrMovesDisabled
	}
	tile, ok := s.state.TileStates.At(x, y)
	if !ok {
		return province.TurnResult{}, fmt.Errorf("%w: (%d,%d)", province.ErrTileNotOnBoard, x, y)
	}
	if tile.Type == province.TypeFortified || tile.Type == province.TypeObstacle {
		return province.TurnResult{}, fmt.Errorf("%w: %s at %s", ErrNotSelectable, tile.Type, tile.Coord())
	}

	res, err := province.ResolveTurn(province.Turn{
		Board:         s.state.TileStates,
		ResourcesLeft: s.state.ResourcesLeft,
		ResourceLimit: s.config.ResourceLimit,
		FirstMove:     s.state.FirstMove,
	}, tile.Coord(), s.rng)
	if err != nil {
		return province.TurnResult{}, err
	}

	s.state.TileStates = res.Board
	s.state.ResourcesLeft = res.ResourcesLeft
	s.state.FirstMove = res.FirstMove
	s.state.Moves++
	if res.Outcome.Terminal() {
		s.beginEndSequence(res.Outcome)
	}
	s.persist()
	return res, nil
}

// beginEndSequence hands the board to an end sequence.
func (s *Session) beginEndSequence(outcome province.Status) {
	s.state.Status = province.StatusAnimating
	s.state.MovesEnabled = false
	s.seq = province.NewEndSequence(s.state.TileStates, outcome, s.rng)
	s.logger.Debug("game over, settling board", "outcome", outcome)
}

// StepEndSequence advances the running end sequence by one step. It returns
// the board to show, the delay before the next step and whether the game is
// now finished. Without a running sequence it reports done immediately.
func (s *Session) StepEndSequence() (province.Board, time.Duration, bool) {
	s.mu.Lock()
	if s.seq == nil {
		board := s.state.TileStates.Clone()
		s.mu.Unlock()
		return board, 0, true
	}

	var delay time.Duration
	if !s.seq.Done() {
		s.state.TileStates, delay = s.seq.Next()
	}
	var summary *Summary
	if s.seq.Done() {
		summary = s.finish()
	}
	s.persist()
	board := s.state.TileStates.Clone()
	s.mu.Unlock()

	if summary != nil {
		s.fireGameOver(*summary)
		return board, 0, true
	}
	return board, delay, false
}

// SettleEndSequence runs the end sequence to completion without waiting.
func (s *Session) SettleEndSequence() error {
	limit := s.State().TileStates.Size().Area() * (province.MaxGrowingLevel + 2)
	for i := 0; i < limit+1; i++ {
		if _, _, done := s.StepEndSequence(); done {
			return nil
		}
	}
	return province.ErrSettleStalled
}

// finish records the terminal outcome. The caller holds the lock.
func (s *Session) finish() *Summary {
	outcome := s.seq.Outcome()
	s.seq = nil
	s.state.Status = outcome
	s.state.MovesEnabled = false
	s.logger.Info("game finished", "outcome", outcome, "moves", s.state.Moves, "resources", s.state.ResourcesLeft)
	return &Summary{
		Config:        s.config.Clone(),
		Outcome:       outcome,
		ResourcesLeft: s.state.ResourcesLeft,
		Moves:         s.state.Moves,
		Elapsed:       s.played(),
		Board:         s.state.TileStates.Clone(),
	}
}

func (s *Session) fireGameOver(summary Summary) {
	if s.onGameOver != nil {
		s.onGameOver(summary)
	}
}

// Pause stops the timer and gates moves.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != province.StatusOngoing || s.state.IsPaused {
		return
	}
	s.state.IsPaused = true
	s.state.MovesEnabled = false
	s.persist()
}

// Resume restarts the timer and reopens moves. It is a no-op unless the game
// is ongoing.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != province.StatusOngoing {
		return
	}
	s.state.IsPaused = false
	s.state.MovesEnabled = true
	s.persist()
}

// Tick advances the one-second timer. It counts up for stopwatch games and
// down otherwise; a countdown reaching zero loses the game. It reports
// whether the tick started an end sequence.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != province.StatusOngoing || s.state.IsPaused {
		return false
	}
	if s.config.CountUp() {
		s.state.ElapsedTime++
		s.persist()
		return false
	}

	s.state.ElapsedTime = max(s.state.ElapsedTime-1, 0)
	started := false
	if s.state.ElapsedTime == 0 {
		s.logger.Debug("time is up")
		s.beginEndSequence(province.StatusEnemyWon)
		started = true
	}
	s.persist()
	return started
}

// timedOut reports whether a countdown has run out. The caller holds the lock.
func (s *Session) timedOut() bool {
	return !s.config.CountUp() && s.state.ElapsedTime <= 0
}

// played returns the seconds spent in the game. The caller holds the lock.
func (s *Session) played() int {
	if s.config.CountUp() {
		return s.state.ElapsedTime
	}
	return s.config.TimeLimit - s.state.ElapsedTime
}

// State returns a copy of the current game state.
func (s *Session) State() province.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Config returns a copy of the current game config.
func (s *Session) Config() province.GameConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Clone()
}

// Animating reports whether an end sequence is running.
func (s *Session) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq != nil
}

// Discard forgets the persisted snapshot.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Remove(KeyGameState); err != nil {
		return err
	}
	return s.storage.Remove(KeyGameConfig)
}

// persist saves the snapshot. Failures are logged and the in-memory game
// carries on. The caller holds the lock.
func (s *Session) persist() {
	if err := s.storage.Set(KeyGameConfig, s.config); err != nil {
		s.logger.Error("failed to save game config", "error", err)
		return
	}
	if err := s.storage.Set(KeyGameState, s.state); err != nil {
		s.logger.Error("failed to save game state", "error", err)
	}
}
