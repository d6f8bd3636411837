// Package storage provides SQLite-based persistence for Province: the saved
// game snapshot, finished game results and the custom game library.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/province/internal/province"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is the record of one finished game.
type Result struct {
	ID            int64
	GameID        string
	Name          string
	Outcome       province.Status
	ResourcesLeft int
	Moves         int
	Elapsed       int // Seconds played
	Width         int
	Height        int
	CreatedAt     time.Time
}

// Won reports whether the player won the game.
func (r Result) Won() bool {
	return r.Outcome == province.StatusPlayerWon
}

// Stats contains aggregated statistics over all results.
type Stats struct {
	Played            int
	Won               int
	Lost              int
	WinRate           float64
	BestResourcesLeft int // Highest resources left on a win
	FastestWin        int // Fewest seconds on a win, 0 if none
	LastPlayed        time.Time
}

// CustomGame is a stored user-defined game config.
type CustomGame struct {
	ID        int
	Config    province.GameConfig
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			resources_left INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_outcome ON results(outcome);

		CREATE TABLE IF NOT EXISTS custom_games (
			id INTEGER PRIMARY KEY,
			config TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get decodes the JSON value stored under key into v.
// Returns false if the key does not exist.
func (s *Store) Get(key string, v any) (bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("storage: cannot decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores v under key as JSON, replacing any previous value.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot remove %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key. Results and custom games are kept.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("storage: cannot clear: %w", err)
	}
	return nil
}

// Keys returns all stored keys in lexical order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return keys, nil
}

// SaveResult records a finished game. A GameID is generated when empty.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.GameID == "" {
		r.GameID = uuid.NewString()
	}
	res, err := s.db.Exec(
		`INSERT INTO results
		 (game_id, name, outcome, resources_left, moves, elapsed_secs, width, height)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Name, string(r.Outcome), r.ResourcesLeft, r.Moves, r.Elapsed, r.Width, r.Height,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResults retrieves the most recent results, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, name, outcome, resources_left, moves, elapsed_secs, width, height, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Name, &outcome, &r.ResourcesLeft, &r.Moves,
			&r.Elapsed, &r.Width, &r.Height, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = province.Status(outcome)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// Stats aggregates all recorded results.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN outcome = ? THEN resources_left END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN elapsed_secs END), 0)
		 FROM results`,
		string(province.StatusPlayerWon), string(province.StatusPlayerWon), string(province.StatusPlayerWon),
	).Scan(&stats.Played, &stats.Won, &stats.BestResourcesLeft, &stats.FastestWin)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.Lost = stats.Played - stats.Won
	if stats.Played > 0 {
		stats.WinRate = float64(stats.Won) / float64(stats.Played)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM results ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

// ClearResults deletes all recorded results.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// SaveCustomGame stores cfg under id, replacing any previous config.
func (s *Store) SaveCustomGame(id int, cfg province.GameConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("storage: cannot encode custom game %d: %w", id, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO custom_games (id, config) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET config = excluded.config`,
		id, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save custom game %d: %w", id, err)
	}
	return nil
}

// DeleteCustomGame removes the custom game with the given id.
func (s *Store) DeleteCustomGame(id int) error {
	if _, err := s.db.Exec("DELETE FROM custom_games WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete custom game %d: %w", id, err)
	}
	return nil
}

// CustomGames returns every stored custom game ordered by id.
func (s *Store) CustomGames() ([]CustomGame, error) {
	rows, err := s.db.Query("SELECT id, config, created_at FROM custom_games ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query custom games: %w", err)
	}
	defer rows.Close()

	var games []CustomGame
	for rows.Next() {
		var g CustomGame
		var raw string
		var createdAt any
		if err := rows.Scan(&g.ID, &raw, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &g.Config); err != nil {
			return nil, fmt.Errorf("storage: cannot decode custom game %d: %w", g.ID, err)
		}
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
