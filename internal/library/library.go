// Package library keeps the player's custom games.
// Games are held in memory for lookup by the front end and written through
// to a Backend so they survive restarts.
package library

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/province/internal/province"
	"github.com/vovakirdan/province/internal/storage"
)

// FirstID is the lowest ID handed to a custom game. Lower numbers are left
// for built-in presets.
const FirstID = 1000

var (
	// ErrInvalidConfig is returned by Add for configs that fail validation.
	ErrInvalidConfig = errors.New("library: invalid game config")

	// ErrUnknownGame is returned for IDs that are not in the library.
	ErrUnknownGame = errors.New("library: unknown game")
)

// Backend persists custom games. storage.Store implements it.
type Backend interface {
	CustomGames() ([]storage.CustomGame, error)
	SaveCustomGame(id int, cfg province.GameConfig) error
	DeleteCustomGame(id int) error
}

// Entry is a custom game and its ID.
type Entry struct {
	ID     int
	Config province.GameConfig
}

// Library is the set of custom games.
type Library struct {
	mu      sync.RWMutex
	backend Backend
	games   map[int]province.GameConfig
}

// New loads every stored custom game from backend.
// Stored configs that no longer validate are skipped.
func New(backend Backend) (*Library, error) {
	stored, err := backend.CustomGames()
	if err != nil {
		return nil, fmt.Errorf("library: load: %w", err)
	}
	l := &Library{
		backend: backend,
		games:   make(map[int]province.GameConfig, len(stored)),
	}
	for _, g := range stored {
		if !province.IsValidConfig(g.Config) {
			continue
		}
		l.games[g.ID] = g.Config
	}
	return l, nil
}

// Add validates cfg and stores it under the lowest free ID.
func (l *Library) Add(cfg province.GameConfig) (int, error) {
	if errs := province.ValidateConfig(cfg); len(errs) > 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, errs[0])
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := FirstID
	for {
		if _, taken := l.games[id]; !taken {
			break
		}
		id++
	}
	if err := l.backend.SaveCustomGame(id, cfg); err != nil {
		return 0, err
	}
	l.games[id] = cfg.Clone()
	return id, nil
}

// Remove deletes the game with the given ID.
func (l *Library) Remove(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.games[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownGame, id)
	}
	if err := l.backend.DeleteCustomGame(id); err != nil {
		return err
	}
	delete(l.games, id)
	return nil
}

// Get returns a copy of the game with the given ID.
func (l *Library) Get(id int) (province.GameConfig, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cfg, ok := l.games[id]
	if !ok {
		return province.GameConfig{}, fmt.Errorf("%w: %d", ErrUnknownGame, id)
	}
	return cfg.Clone(), nil
}

// List returns every game sorted by ID.
func (l *Library) List() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Entry, 0, len(l.games))
	for id, cfg := range l.games {
		result = append(result, Entry{ID: id, Config: cfg.Clone()})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if a game with the given ID is in the library.
func (l *Library) Exists(id int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.games[id]
	return ok
}
