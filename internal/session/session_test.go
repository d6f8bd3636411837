package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/province/internal/province"
)

func openBoard(limit int) province.GameConfig {
	return province.GameConfig{
		Name:          "open",
		BoardSize:     province.S(3, 3),
		ResourceLimit: limit,
		TimeLimit:     -1,
		FillConfig: province.FillConfig{
			Type:          province.FillProbabilities,
			Probabilities: &province.Probabilities{Territory: 1},
		},
	}
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithRand(province.NewRand(1))}, opts...)
	return New(opts...)
}

// playAll selects every tile in row-major order until a move is refused.
func playAll(t *testing.T, s *Session) {
	t.Helper()
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if _, err := s.SelectTile(x, y); err != nil {
				require.ErrorIs(t, err, ErrMovesDisabled)
				return
			}
		}
	}
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	s := newSession(t)
	require.True(t, s.NewGame(openBoard(9)))
	before := s.State()

	bad := openBoard(9)
	bad.BoardSize = province.S(2, 2)
	assert.False(t, s.NewGame(bad))

	after := s.State()
	assert.True(t, before.TileStates.Equal(after.TileStates))
	assert.Equal(t, before.ResourcesLeft, after.ResourcesLeft)
	assert.Equal(t, province.S(3, 3), s.Config().BoardSize)
}

func TestNewGameInitialState(t *testing.T) {
	s := newSession(t)
	require.True(t, s.NewGame(openBoard(9)))

	st := s.State()
	assert.Equal(t, province.StatusOngoing, st.Status)
	assert.Equal(t, 9, st.ResourcesLeft)
	assert.True(t, st.FirstMove)
	assert.True(t, st.MovesEnabled)
	assert.Len(t, st.InitialTileStates, 9)
}

func TestSelectTileGates(t *testing.T) {
	s := newSession(t)

	_, err := s.SelectTile(1, 1)
	assert.ErrorIs(t, err, ErrNoGame)

	cfg := openBoard(9)
	cfg.InitialTileStates = []province.Tile{
		province.NewTile(3, 3, province.TypeFortified, false),
		province.NewTile(3, 2, province.TypeObstacle, false),
	}
	require.True(t, s.NewGame(cfg))

	_, err = s.SelectTile(3, 3)
	assert.ErrorIs(t, err, ErrNotSelectable)
	_, err = s.SelectTile(3, 2)
	assert.ErrorIs(t, err, ErrNotSelectable)
	_, err = s.SelectTile(4, 1)
	assert.ErrorIs(t, err, province.ErrTileNotOnBoard)

	s.Pause()
	_, err = s.SelectTile(1, 1)
	assert.ErrorIs(t, err, ErrMovesDisabled)

	s.Resume()
	res, err := s.SelectTile(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, res.ResourcesLeft)
	assert.Equal(t, 1, s.State().Moves)
	assert.False(t, s.State().FirstMove)
}

func TestLossByDepletion(t *testing.T) {
	var summaries []Summary
	s := newSession(t, WithGameOverHook(func(sum Summary) { summaries = append(summaries, sum) }))
	require.True(t, s.NewGame(openBoard(7)))

	playAll(t, s)
	st := s.State()
	require.Equal(t, province.StatusAnimating, st.Status)
	assert.False(t, st.MovesEnabled)
	assert.Equal(t, 0, st.ResourcesLeft)
	assert.Equal(t, 7, st.Moves)
	assert.False(t, s.NewGame(openBoard(9)), "no new game while animating")

	require.NoError(t, s.SettleEndSequence())
	assert.Equal(t, province.StatusEnemyWon, s.State().Status)
	require.Len(t, summaries, 1)
	assert.Equal(t, province.StatusEnemyWon, summaries[0].Outcome)
	assert.Equal(t, 7, summaries[0].Moves)

	// The hook fires once.
	_, _, done := s.StepEndSequence()
	assert.True(t, done)
	assert.Len(t, summaries, 1)
}

func TestWinSettlesToFortified(t *testing.T) {
	var outcome province.Status
	s := newSession(t, WithGameOverHook(func(sum Summary) { outcome = sum.Outcome }))
	require.True(t, s.NewGame(openBoard(9)))

	playAll(t, s)
	require.Equal(t, province.StatusAnimating, s.State().Status)
	assert.True(t, s.Animating())

	steps := 0
	for {
		board, delay, done := s.StepEndSequence()
		if done {
			assert.True(t, province.AllFortified(board))
			break
		}
		steps++
		assert.Equal(t, province.StepDelay(steps), delay)
	}
	assert.Equal(t, province.StatusPlayerWon, s.State().Status)
	assert.Equal(t, province.StatusPlayerWon, outcome)
	assert.False(t, s.Animating())

	_, err := s.SelectTile(1, 1)
	assert.ErrorIs(t, err, ErrMovesDisabled)
}

func TestTick(t *testing.T) {
	t.Run("stopwatch", func(t *testing.T) {
		s := newSession(t)
		require.True(t, s.NewGame(openBoard(9)))
		for i := 0; i < 3; i++ {
			assert.False(t, s.Tick())
		}
		assert.Equal(t, 3, s.State().ElapsedTime)

		s.Pause()
		s.Tick()
		assert.Equal(t, 3, s.State().ElapsedTime)
	})

	t.Run("countdown", func(t *testing.T) {
		var summary Summary
		s := newSession(t, WithGameOverHook(func(sum Summary) { summary = sum }))
		cfg := openBoard(9)
		cfg.TimeLimit = 2
		require.True(t, s.NewGame(cfg))
		assert.Equal(t, 2, s.State().ElapsedTime)

		assert.False(t, s.Tick())
		assert.True(t, s.Tick())
		st := s.State()
		assert.Equal(t, 0, st.ElapsedTime)
		assert.Equal(t, province.StatusAnimating, st.Status)
		assert.False(t, s.Tick(), "timer stops once the game is over")

		require.NoError(t, s.SettleEndSequence())
		assert.Equal(t, province.StatusEnemyWon, s.State().Status)
		assert.Equal(t, 2, summary.Elapsed)
	})
}

func TestResumeOnlyWhenOngoing(t *testing.T) {
	s := newSession(t)
	require.True(t, s.NewGame(openBoard(7)))
	playAll(t, s)
	require.NoError(t, s.SettleEndSequence())

	s.Resume()
	assert.False(t, s.State().MovesEnabled)
	assert.False(t, s.State().IsPaused)
}

func TestRestartReplaysOpening(t *testing.T) {
	s := newSession(t)
	cfg := province.DefaultConfig()
	require.True(t, s.NewGame(cfg))
	opening := s.State().TileStates

	played := 0
	for _, tile := range opening.Tiles {
		if tile.Type != province.TypeTerritory {
			continue
		}
		_, err := s.SelectTile(tile.X, tile.Y)
		require.NoError(t, err)
		if played++; played == 2 {
			break
		}
	}
	require.Equal(t, 2, s.State().Moves)
	require.False(t, s.State().TileStates.Equal(opening))

	require.True(t, s.RestartGame())
	st := s.State()
	assert.True(t, st.TileStates.Equal(opening))
	assert.Equal(t, cfg.ResourceLimit, st.ResourcesLeft)
	assert.True(t, st.FirstMove)
	assert.Equal(t, 0, st.Moves)
}

func TestLoadGame(t *testing.T) {
	t.Run("empty storage starts fresh", func(t *testing.T) {
		s := newSession(t, WithPresets([]province.GameConfig{openBoard(9)}))
		restored, err := s.LoadGame()
		require.NoError(t, err)
		assert.False(t, restored)
		assert.Equal(t, "open", s.Config().Name)
		assert.Equal(t, province.StatusOngoing, s.State().Status)
	})

	t.Run("restores saved game", func(t *testing.T) {
		store := NewMemoryStorage()
		first := newSession(t, WithStorage(store))
		require.True(t, first.NewGame(openBoard(9)))
		_, err := first.SelectTile(2, 2)
		require.NoError(t, err)
		first.Tick()
		first.Pause()

		second := newSession(t, WithStorage(store))
		restored, err := second.LoadGame()
		require.NoError(t, err)
		assert.True(t, restored)

		a, b := first.State(), second.State()
		assert.True(t, a.TileStates.Equal(b.TileStates))
		assert.Equal(t, a.ResourcesLeft, b.ResourcesLeft)
		assert.Equal(t, 1, b.ElapsedTime)
		assert.True(t, b.IsPaused)
		assert.False(t, b.MovesEnabled)
	})

	t.Run("corrupt snapshot starts fresh", func(t *testing.T) {
		store := NewMemoryStorage()
		require.NoError(t, store.Set(KeyGameConfig, openBoard(9)))
		store.SetRaw(KeyGameState, []byte(`{"status":"ongoing","tileStates":[{"x":1,"y":1,"type":"lava","growingLevel":0,"isCaptured":false,"isHidden":false}]}`))

		s := newSession(t, WithStorage(store), WithPresets([]province.GameConfig{openBoard(8)}))
		restored, err := s.LoadGame()
		require.NoError(t, err)
		assert.False(t, restored)
		assert.Equal(t, 8, s.Config().ResourceLimit)
	})

	t.Run("undecodable snapshot starts fresh", func(t *testing.T) {
		store := NewMemoryStorage()
		store.SetRaw(KeyGameConfig, []byte(`{"boardSize":"big"}`))
		store.SetRaw(KeyGameState, []byte(`{}`))

		s := newSession(t, WithStorage(store))
		restored, err := s.LoadGame()
		require.NoError(t, err)
		assert.False(t, restored)
		assert.Equal(t, province.StatusOngoing, s.State().Status)
	})

	t.Run("resumes end sequence", func(t *testing.T) {
		store := NewMemoryStorage()
		first := newSession(t, WithStorage(store))
		require.True(t, first.NewGame(openBoard(9)))
		playAll(t, first)
		require.Equal(t, province.StatusAnimating, first.State().Status)

		var outcome province.Status
		second := newSession(t, WithStorage(store), WithGameOverHook(func(sum Summary) { outcome = sum.Outcome }))
		restored, err := second.LoadGame()
		require.NoError(t, err)
		require.True(t, restored)
		assert.True(t, second.Animating())

		require.NoError(t, second.SettleEndSequence())
		assert.Equal(t, province.StatusPlayerWon, outcome)
		assert.True(t, province.AllFortified(second.State().TileStates))
	})
}

type failingStorage struct {
	*MemoryStorage
	writes int
}

func (f *failingStorage) Set(string, any) error {
	f.writes++
	return errors.New("quota exceeded")
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	store := &failingStorage{MemoryStorage: NewMemoryStorage()}
	s := newSession(t, WithStorage(store))

	require.True(t, s.NewGame(openBoard(9)))
	res, err := s.SelectTile(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, res.ResourcesLeft)
	assert.Equal(t, 8, s.State().ResourcesLeft)
	assert.Positive(t, store.writes)
}

func TestDiscard(t *testing.T) {
	store := NewMemoryStorage()
	s := newSession(t, WithStorage(store))
	require.True(t, s.NewGame(openBoard(9)))
	require.NoError(t, s.Discard())

	var cfg province.GameConfig
	found, err := store.Get(KeyGameConfig, &cfg)
	require.NoError(t, err)
	assert.False(t, found)
}
