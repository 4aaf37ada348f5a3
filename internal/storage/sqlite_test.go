package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	records := []sim.Record{
		{GameID: 1, Seed: 11, Score: 3, Duration: 12.5, PipesPassed: 3, Status: sim.StatusCompleted},
		{GameID: 2, Seed: 12, Score: 9, Duration: 44.0, PipesPassed: 9, Status: sim.StatusCompleted},
		{GameID: 3, Seed: 13, Score: 1, Duration: 6.2, PipesPassed: 1, Status: sim.StatusAborted},
	}
	for _, rec := range records {
		if _, err := store.SaveRecord(rec, "single"); err != nil {
			t.Fatalf("SaveRecord() failed: %v", err)
		}
	}

	top, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(top))
	}

	// Should be sorted descending by score
	if top[0].Score != 9 || top[1].Score != 3 || top[2].Score != 1 {
		t.Errorf("Scores not in expected order: %d, %d, %d", top[0].Score, top[1].Score, top[2].Score)
	}
	if top[0].Seed != 12 {
		t.Errorf("Expected best session to carry seed 12, got %d", top[0].Seed)
	}
	if top[0].Bot != "single" {
		t.Errorf("Expected bot variant to round-trip, got %q", top[0].Bot)
	}
	if top[2].Status != string(sim.StatusAborted) {
		t.Errorf("Expected aborted status to round-trip, got %q", top[2].Status)
	}
}

func TestStoreSaveBatch(t *testing.T) {
	store := openTestStore(t)

	var records []sim.Record
	for i := 1; i <= 15; i++ {
		records = append(records, sim.Record{
			GameID:      i,
			Seed:        uint32(1000 + i),
			Score:       i,
			Duration:    float64(i),
			PipesPassed: i,
			Status:      sim.StatusCompleted,
		})
	}
	if err := store.SaveBatch(records, "two_pipes"); err != nil {
		t.Fatalf("SaveBatch() failed: %v", err)
	}

	recent, err := store.RecentSessions(100)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 15 {
		t.Errorf("Expected 15 sessions, got %d", len(recent))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveRecord(sim.Record{Seed: uint32(i), Score: i * 10, Status: sim.StatusCompleted}, "")
	}

	top, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(top))
	}
	if top[0].Score != 50 || top[1].Score != 40 || top[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", top)
	}
}

func TestStoreSessionsBySeed(t *testing.T) {
	store := openTestStore(t)

	store.SaveRecord(sim.Record{Seed: 777, Score: 2, Status: sim.StatusCompleted}, "single")
	store.SaveRecord(sim.Record{Seed: 777, Score: 2, Status: sim.StatusCompleted}, "single")
	store.SaveRecord(sim.Record{Seed: 888, Score: 5, Status: sim.StatusCompleted}, "")

	sessions, err := store.SessionsBySeed(777)
	if err != nil {
		t.Fatalf("SessionsBySeed() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions for seed 777, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.Seed != 777 {
			t.Errorf("Expected seed 777, got %d", s.Seed)
		}
	}

	none, err := store.SessionsBySeed(999)
	if err != nil {
		t.Fatalf("SessionsBySeed() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no sessions for unknown seed, got %d", len(none))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No sessions yet
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	store.SaveRecord(sim.Record{Seed: 1, Score: 4, Status: sim.StatusCompleted}, "")
	store.SaveRecord(sim.Record{Seed: 2, Score: 12, Status: sim.StatusCompleted}, "")
	store.SaveRecord(sim.Record{Seed: 3, Score: 7, Status: sim.StatusCompleted}, "")

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("Expected high score of 12, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRecord(sim.Record{Seed: 1, Score: 2, Status: sim.StatusCompleted}, "")
	store.SaveRecord(sim.Record{Seed: 2, Score: 6, Status: sim.StatusCompleted}, "")

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Sessions != 2 {
		t.Errorf("Expected 2 sessions, got %d", stats.Sessions)
	}
	if stats.HighScore != 6 {
		t.Errorf("Expected high score 6, got %d", stats.HighScore)
	}
	if stats.AvgScore != 4 {
		t.Errorf("Expected average 4, got %v", stats.AvgScore)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveRecord(sim.Record{Seed: 1, Score: 1, Status: sim.StatusCompleted}, "")
	store.SaveRecord(sim.Record{Seed: 2, Score: 2, Status: sim.StatusCompleted}, "")

	if err := store.ClearSessions(); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	recent, _ := store.RecentSessions(10)
	if len(recent) != 0 {
		t.Errorf("Expected 0 sessions after clear, got %d", len(recent))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
