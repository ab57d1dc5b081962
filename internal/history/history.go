// Package history persists validation runs to a SQLite database under the
// project's .archcheck directory, so a team can see when the architecture
// last passed and what broke it when it did not.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"archcheck/internal/validate"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store records validation runs and their findings.
type Store struct {
	db *sql.DB
}

// Run is one recorded validation pass.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Passed     bool
	IssueCount int
}

// Open initializes the history database at path, creating parent
// directories and tables as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		passed INTEGER NOT NULL,
		issue_count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_issues (
		run_id TEXT NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_run_issues_run ON run_issues(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize history schema: %w", err)
	}
	return nil
}

// Record stores one validation run with its findings and returns the run id.
func (s *Store) Record(issues []validate.Issue) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, created_at, passed, issue_count) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UTC(), len(issues) == 0, len(issues),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	for i, issue := range issues {
		_, err = tx.Exec(
			`INSERT INTO run_issues (run_id, position, kind, message) VALUES (?, ?, ?, ?)`,
			runID, i, string(issue.Kind), issue.Message,
		)
		if err != nil {
			return "", fmt.Errorf("record issue: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit history tx: %w", err)
	}
	return runID, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, passed, issue_count FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Passed, &r.IssueCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Issues returns the findings recorded for a run, in report order.
func (s *Store) Issues(runID string) ([]validate.Issue, error) {
	rows, err := s.db.Query(
		`SELECT kind, message FROM run_issues WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []validate.Issue
	for rows.Next() {
		var kind, message string
		if err := rows.Scan(&kind, &message); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, validate.Issue{Kind: validate.Kind(kind), Message: message})
	}
	return issues, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
