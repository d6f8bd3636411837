package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/province/internal/province"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var got payload
	found, err := store.Get("missing", &got)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Error("Get() on a missing key should report not found")
	}

	if err := store.Set("a", payload{Name: "first", Count: 1}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("a", payload{Name: "second", Count: 2}); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	found, err = store.Get("a", &got)
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v; expected found", found, err)
	}
	if got.Name != "second" || got.Count != 2 {
		t.Errorf("Get() = %+v, expected the overwritten value", got)
	}

	if err := store.Set("b", 42); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, expected [a b]", keys)
	}

	if err := store.Remove("a"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if err := store.Remove("a"); err != nil {
		t.Errorf("Remove() of a missing key should not fail: %v", err)
	}
	if found, _ := store.Get("a", &got); found {
		t.Error("key should be gone after Remove()")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	keys, _ = store.Keys()
	if len(keys) != 0 {
		t.Errorf("Keys() after Clear() = %v, expected none", keys)
	}
}

func TestStoreGetDecodeError(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set("n", "not a number"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	var n int
	if _, err := store.Get("n", &n); err == nil {
		t.Error("Get() into a mismatched type should fail")
	}
}

func TestStoreSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	cfg := province.GameConfig{
		BoardSize:     province.S(4, 3),
		ResourceLimit: 9,
		TimeLimit:     -1,
		FillConfig:    province.FillConfig{Type: province.FillFixed, Numbers: &province.Numbers{Fortified: 1, Enemy: 2}},
	}
	board, err := province.GenerateBoard(cfg, province.NewRand(1))
	if err != nil {
		t.Fatalf("GenerateBoard() failed: %v", err)
	}
	state := province.NewGameState(cfg, board)

	if err := store.Set("gameState", state); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	var restored province.GameState
	if found, err := store.Get("gameState", &restored); err != nil || !found {
		t.Fatalf("Get() = %v, %v", found, err)
	}

	snap, err := province.Snapshot{Config: cfg, State: restored}.Normalize()
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if !snap.State.TileStates.Equal(board) {
		t.Error("restored board differs from the saved one")
	}
}

func TestStoreResults(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{Name: "a", Outcome: province.StatusPlayerWon, ResourcesLeft: 3, Moves: 20, Elapsed: 95, Width: 8, Height: 8},
		{Name: "b", Outcome: province.StatusEnemyWon, ResourcesLeft: 0, Moves: 12, Elapsed: 40, Width: 8, Height: 8},
		{Name: "c", Outcome: province.StatusPlayerWon, ResourcesLeft: 6, Moves: 25, Elapsed: 120, Width: 10, Height: 10},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results with limit, got %d", len(recent))
	}
	if recent[0].Name != "c" || recent[1].Name != "b" {
		t.Errorf("Results not newest first: %s, %s", recent[0].Name, recent[1].Name)
	}
	if recent[0].GameID == "" || recent[0].GameID == recent[1].GameID {
		t.Error("each result should get its own game ID")
	}
	if !recent[0].Won() || recent[1].Won() {
		t.Error("Won() does not match the outcome")
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Played != 3 || stats.Won != 2 || stats.Lost != 1 {
		t.Errorf("Stats() counts = %d/%d/%d, expected 3/2/1", stats.Played, stats.Won, stats.Lost)
	}
	if stats.WinRate < 0.66 || stats.WinRate > 0.67 {
		t.Errorf("WinRate = %f, expected 2/3", stats.WinRate)
	}
	if stats.BestResourcesLeft != 6 {
		t.Errorf("BestResourcesLeft = %d, expected 6", stats.BestResourcesLeft)
	}
	if stats.FastestWin != 95 {
		t.Errorf("FastestWin = %d, expected 95", stats.FastestWin)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Played != 0 || stats.WinRate != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty table = %+v", stats)
	}
}

func TestStoreDuplicateGameID(t *testing.T) {
	store := openTestStore(t)

	r := Result{GameID: "fixed", Outcome: province.StatusEnemyWon, Width: 3, Height: 3}
	if _, err := store.SaveResult(r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(r); err == nil {
		t.Error("saving the same game twice should fail")
	}
}

func TestStoreCustomGames(t *testing.T) {
	store := openTestStore(t)

	cfg := province.GameConfig{
		Name:          "custom",
		BoardSize:     province.S(5, 5),
		ResourceLimit: 12,
		TimeLimit:     300,
		FogOfWar:      true,
		FillConfig: province.FillConfig{
			Type: province.FillProbabilities,
			Probabilities: &province.Probabilities{
				Territory: 0.8, Fortified: 0.1, Enemy: 0.1,
				MinFortified: province.IntPtr(1),
			},
		},
	}

	if err := store.SaveCustomGame(1001, cfg); err != nil {
		t.Fatalf("SaveCustomGame() failed: %v", err)
	}
	if err := store.SaveCustomGame(1000, cfg); err != nil {
		t.Fatalf("SaveCustomGame() failed: %v", err)
	}

	games, err := store.CustomGames()
	if err != nil {
		t.Fatalf("CustomGames() failed: %v", err)
	}
	if len(games) != 2 || games[0].ID != 1000 || games[1].ID != 1001 {
		t.Fatalf("CustomGames() = %+v, expected ids 1000 and 1001", games)
	}
	got := games[0].Config
	if got.Name != "custom" || got.BoardSize != cfg.BoardSize || !got.FogOfWar {
		t.Errorf("config not preserved: %+v", got)
	}
	if got.FillConfig.Probabilities == nil || got.FillConfig.Probabilities.MinFortified == nil ||
		*got.FillConfig.Probabilities.MinFortified != 1 {
		t.Error("fill clamps not preserved")
	}

	if err := store.DeleteCustomGame(1000); err != nil {
		t.Fatalf("DeleteCustomGame() failed: %v", err)
	}
	games, _ = store.CustomGames()
	if len(games) != 1 || games[0].ID != 1001 {
		t.Errorf("CustomGames() after delete = %+v", games)
	}
}
