// Package storage keeps the run log of the current play session.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The database lives in memory only and is gone when the process exits.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Session manages the in-memory SQLite database holding finished runs.
type Session struct {
	db *sql.DB
}

// RunRecord represents a single finished run.
type RunRecord struct {
	ID       int64
	RunID    string
	Score    int
	Ticks    int
	Cause    string
	Speed    float64
	Duration time.Duration
	EndedAt  time.Time
}

// Stats summarizes all runs of the session.
type Stats struct {
	Runs       int
	BestScore  int
	TotalScore int
	TotalTicks int
	Collisions int
	FloorHits  int
}

// AverageScore returns the mean score per run.
func (s Stats) AverageScore() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Runs)
}

// OpenSession creates an empty in-memory run log.
func OpenSession() (*Session, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Session{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return s, nil
}

// migrate creates the database schema.
func (s *Session) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			cause TEXT NOT NULL,
			speed REAL NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection and discards the log.
func (s *Session) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a finished run.
// A zero EndedAt is replaced by the current time.
// Returns the ID of the inserted record.
func (s *Session) RecordRun(r RunRecord) (int64, error) {
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, score, ticks, cause, speed, duration_ms, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Score, r.Ticks, r.Cause, r.Speed,
		r.Duration.Milliseconds(), r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the N best runs, highest score first.
// Ties go to the earlier run.
func (s *Session) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.query(
		`SELECT id, run_id, score, ticks, cause, speed, duration_ms, ended_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// Runs retrieves every run in the order they finished.
func (s *Session) Runs() ([]RunRecord, error) {
	return s.query(
		`SELECT id, run_id, score, ticks, cause, speed, duration_ms, ended_at
		 FROM runs
		 ORDER BY id ASC`,
	)
}

func (s *Session) query(q string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMs, endedAt int64
		if err := rows.Scan(&r.ID, &r.RunID, &r.Score, &r.Ticks, &r.Cause, &r.Speed, &durationMs, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.EndedAt = time.UnixMilli(endedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BestScore returns the highest score of the session.
// Returns 0 if no run has finished yet.
func (s *Session) BestScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats aggregates all runs of the session.
func (s *Session) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(MAX(score), 0),
		        COALESCE(SUM(score), 0),
		        COALESCE(SUM(ticks), 0),
		        COALESCE(SUM(cause = 'collision'), 0),
		        COALESCE(SUM(cause = 'floor'), 0)
		 FROM runs`,
	).Scan(&st.Runs, &st.BestScore, &st.TotalScore, &st.TotalTicks, &st.Collisions, &st.FloorHits)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}
