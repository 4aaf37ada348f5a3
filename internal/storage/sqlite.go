// Package storage persists session records in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionRow is one persisted session outcome. Bot is empty for sessions
// driven by human input.
type SessionRow struct {
	ID          int64
	GameID      int
	Seed        uint32
	Score       int
	Duration    float64
	PipesPassed int
	Status      string
	Bot         string
	CreatedAt   time.Time
}

// Stats contains aggregated statistics over all stored sessions.
type Stats struct {
	Sessions   int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			duration_seconds REAL NOT NULL,
			pipes_passed INTEGER NOT NULL,
			status TEXT NOT NULL,
			bot TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_seed ON sessions(seed);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(score DESC);
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

// SaveRecord stores one session record. bot names the policy variant that
// played it, or is empty for a human run.
// Returns the ID of the inserted row.
func (s *Store) SaveRecord(rec sim.Record, bot string) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (game_id, seed, score, duration_seconds, pipes_passed, status, bot)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Seed, rec.Score, rec.Duration, rec.PipesPassed, string(rec.Status), bot,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveBatch stores a batch of records in one transaction.
func (s *Store) SaveBatch(records []sim.Record, bot string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO sessions (game_id, seed, score, duration_seconds, pipes_passed, status, bot)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.GameID, rec.Seed, rec.Score, rec.Duration, rec.PipesPassed, string(rec.Status), bot,
		); err != nil {
			return fmt.Errorf("storage: cannot save session %d: %w", rec.GameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit batch: %w", err)
	}
	return nil
}

// TopScores retrieves the N best sessions ordered by score descending.
func (s *Store) TopScores(limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, score, duration_seconds, pipes_passed, status, bot, created_at
		 FROM sessions
		 ORDER BY score DESC, created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// RecentSessions retrieves the most recently played sessions.
func (s *Store) RecentSessions(limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, score, duration_seconds, pipes_passed, status, bot, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// SessionsBySeed retrieves every stored session played under the seed,
// newest first. The same seed can appear many times across replays.
func (s *Store) SessionsBySeed(seed uint32) ([]SessionRow, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, seed, score, duration_seconds, pipes_passed, status, bot, created_at
		 FROM sessions
		 WHERE seed = ?
		 ORDER BY created_at DESC, id DESC`,
		seed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions by seed: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// HighScore returns the best score across all sessions.
// Returns 0 if no sessions exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM sessions").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// GetStats retrieves aggregated statistics over all stored sessions.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// ClearSessions deletes all stored sessions.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

func scanSessions(rows *sql.Rows) ([]SessionRow, error) {
	var entries []SessionRow
	for rows.Next() {
		var e SessionRow
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.GameID, &e.Seed, &e.Score, &e.Duration,
			&e.PipesPassed, &e.Status, &e.Bot, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseCreatedAt handles both time.Time and string datetimes from the driver.
func parseCreatedAt(v any) time.Time {
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
