package library

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/province/internal/province"
	"github.com/vovakirdan/province/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func customConfig(name string) province.GameConfig {
	cfg := province.DefaultConfig()
	cfg.Name = name
	return cfg
}

func TestAddAssignsLowestFreeID(t *testing.T) {
	lib, err := New(openStore(t))
	require.NoError(t, err)

	first, err := lib.Add(customConfig("a"))
	require.NoError(t, err)
	second, err := lib.Add(customConfig("b"))
	require.NoError(t, err)
	assert.Equal(t, FirstID, first)
	assert.Equal(t, FirstID+1, second)

	require.NoError(t, lib.Remove(first))
	assert.False(t, lib.Exists(first))

	reused, err := lib.Add(customConfig("c"))
	require.NoError(t, err)
	assert.Equal(t, FirstID, reused)

	entries := lib.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Config.Name)
	assert.Equal(t, "b", entries[1].Config.Name)
}

func TestAddRejectsInvalidConfig(t *testing.T) {
	lib, err := New(openStore(t))
	require.NoError(t, err)

	cfg := customConfig("tiny")
	cfg.ResourceLimit = 3
	_, err = lib.Add(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Empty(t, lib.List())
}

func TestLibrarySurvivesReload(t *testing.T) {
	store := openStore(t)
	lib, err := New(store)
	require.NoError(t, err)
	id, err := lib.Add(customConfig("saved"))
	require.NoError(t, err)

	// An entry written behind the library's back that no longer validates.
	bad := customConfig("broken")
	bad.BoardSize = province.S(50, 50)
	require.NoError(t, store.SaveCustomGame(2000, bad))

	reloaded, err := New(store)
	require.NoError(t, err)
	assert.True(t, reloaded.Exists(id))
	assert.False(t, reloaded.Exists(2000))

	cfg, err := reloaded.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "saved", cfg.Name)
	assert.Equal(t, province.S(8, 8), cfg.BoardSize)
}

func TestGetReturnsCopy(t *testing.T) {
	lib, err := New(openStore(t))
	require.NoError(t, err)
	id, err := lib.Add(customConfig("orig"))
	require.NoError(t, err)

	cfg, err := lib.Get(id)
	require.NoError(t, err)
	cfg.FillConfig.Probabilities.Territory = 0

	again, err := lib.Get(id)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, again.FillConfig.Probabilities.Territory, 1e-9)
}

func TestUnknownGame(t *testing.T) {
	lib, err := New(openStore(t))
	require.NoError(t, err)

	_, err = lib.Get(FirstID)
	assert.ErrorIs(t, err, ErrUnknownGame)
	assert.ErrorIs(t, lib.Remove(FirstID), ErrUnknownGame)
}

type brokenBackend struct {
	loadErr error
	saveErr error
}

func (b brokenBackend) CustomGames() ([]storage.CustomGame, error) { return nil, b.loadErr }
func (b brokenBackend) SaveCustomGame(int, province.GameConfig) error { return b.saveErr }
func (b brokenBackend) DeleteCustomGame(int) error                  { return nil }

func TestBackendErrors(t *testing.T) {
	boom := errors.New("disk full")

	_, err := New(brokenBackend{loadErr: boom})
	assert.ErrorIs(t, err, boom)

	lib, err := New(brokenBackend{saveErr: boom})
	require.NoError(t, err)
	_, err = lib.Add(customConfig("x"))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, lib.List(), "failed saves are not kept in memory")
}
