// Package history persists finished remediation sessions to a local
// SQLite database so operators can review how often and how successfully
// a host needed correcting.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"screenmon/internal/monitor"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	ended_at      TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	iterations    INTEGER NOT NULL,
	process_count INTEGER NOT NULL,
	success_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
`

// Store is a SQLite-backed session log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the store at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("creating schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one finished session.
func (s *Store) Record(ctx context.Context, sess monitor.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at, ended_at, outcome, iterations, process_count, success_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.StartedAt.UTC().Format(time.RFC3339),
		sess.EndedAt.UTC().Format(time.RFC3339),
		string(sess.Outcome),
		sess.Iterations,
		sess.ProcessCount,
		sess.SuccessCount,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// List returns the most recent sessions, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]monitor.Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, outcome, iterations, process_count, success_count
		FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []monitor.Session
	for rows.Next() {
		var sess monitor.Session
		var startedAt, endedAt, outcome string
		if err := rows.Scan(&sess.ID, &startedAt, &endedAt, &outcome,
			&sess.Iterations, &sess.ProcessCount, &sess.SuccessCount); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sess.Outcome = monitor.Outcome(outcome)
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			sess.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339, endedAt); err == nil {
			sess.EndedAt = t
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}
