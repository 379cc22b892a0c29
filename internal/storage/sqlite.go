// Package storage provides an in-memory SQLite journal of played rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Nothing is written to disk: the journal lives as long as the process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// memoryDSN opens a private in-memory database. Each connection to ":memory:"
// gets its own database, so the pool is pinned to one connection.
const memoryDSN = ":memory:"

// Store manages the SQLite connection holding the round journal.
type Store struct {
	db *sql.DB
}

// Round is one finished round.
type Round struct {
	ID      int64
	Mode    string
	Score   int
	Hits    int
	Misses  int
	Elapsed time.Duration
	Reason  string // "board full", "target reached", "time up", "abandoned"
	Won     bool
	EndedAt time.Time
}

// Stats contains aggregated statistics for a mode.
type Stats struct {
	Mode      string
	Rounds    int
	Wins      int
	BestScore int
	AvgScore  float64
	BestTime  time.Duration // fastest win, 0 when there is none
}

// OpenMemory creates an empty in-memory journal and runs migrations.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	// Test connection
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

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			hits INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL,
			reason TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_mode ON rounds(mode);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(mode, score DESC, elapsed_ms ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. The journal is gone afterwards.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRound appends a finished round to the journal.
// Returns the ID of the inserted record.
func (s *Store) RecordRound(r Round) (int64, error) {
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds (mode, score, hits, misses, elapsed_ms, reason, won, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Score, r.Hits, r.Misses, r.Elapsed.Milliseconds(), r.Reason, r.Won, r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds returns the latest rounds for a mode, newest first.
// An empty mode matches every mode.
func (s *Store) RecentRounds(mode string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.query(
		`SELECT id, mode, score, hits, misses, elapsed_ms, reason, won, ended_at
		 FROM rounds
		 WHERE (? = '' OR mode = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
}

// TopRounds returns the best rounds for a mode: highest score first, faster
// rounds first on equal scores.
func (s *Store) TopRounds(mode string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.query(
		`SELECT id, mode, score, hits, misses, elapsed_ms, reason, won, ended_at
		 FROM rounds
		 WHERE (? = '' OR mode = ?)
		 ORDER BY score DESC, elapsed_ms ASC, id ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
}

func (s *Store) query(q string, args ...any) ([]Round, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var elapsedMS, endedAt int64
		if err := rows.Scan(&r.ID, &r.Mode, &r.Score, &r.Hits, &r.Misses, &elapsedMS, &r.Reason, &r.Won, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.EndedAt = time.UnixMilli(endedAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// ModeStats retrieves aggregated statistics for a mode.
// An empty mode aggregates every mode.
func (s *Store) ModeStats(mode string) (*Stats, error) {
	stats := &Stats{Mode: mode}

	var bestTime sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        MIN(CASE WHEN won = 1 THEN elapsed_ms END)
		 FROM rounds WHERE (? = '' OR mode = ?)`,
		mode, mode,
	).Scan(&stats.Rounds, &stats.Wins, &stats.BestScore, &stats.AvgScore, &bestTime)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	if bestTime.Valid {
		stats.BestTime = time.Duration(bestTime.Int64) * time.Millisecond
	}

	return stats, nil
}

// ClearRounds deletes all rounds for the given mode.
func (s *Store) ClearRounds(mode string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}
