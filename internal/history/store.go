package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const dbFileName = "history.db"

// ErrNotFound is returned when a run ID is unknown or already closed.
var ErrNotFound = errors.New("run not found")

// Store records countdown runs in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the history database inside dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (store *Store) Close() error {
	if store == nil || store.db == nil {
		return nil
	}
	return store.db.Close()
}

func (store *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		ended_at INTEGER,
		total_seconds INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := store.db.Exec(schema)
	return err
}

// Begin records a new run and returns its ID.
func (store *Store) Begin(total time.Duration) (string, error) {
	runID := uuid.NewString()
	_, err := store.db.Exec(
		"INSERT INTO runs (id, started_at, total_seconds, outcome) VALUES (?, ?, ?, ?)",
		runID,
		store.now().UnixMilli(),
		int(total/time.Second),
		string(OutcomeRunning),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// Extend updates the planned total of an open run.
func (store *Store) Extend(runID string, total time.Duration) error {
	return store.update(
		"UPDATE runs SET total_seconds = ? WHERE id = ? AND outcome = ?",
		int(total/time.Second), runID, string(OutcomeRunning),
	)
}

// Finish marks an open run as expired normally.
func (store *Store) Finish(runID string) error {
	return store.close(runID, OutcomeFinished)
}

// Abandon marks an open run as reset before expiry.
func (store *Store) Abandon(runID string) error {
	return store.close(runID, OutcomeAbandoned)
}

func (store *Store) close(runID string, outcome Outcome) error {
	return store.update(
		"UPDATE runs SET ended_at = ?, outcome = ? WHERE id = ? AND outcome = ?",
		store.now().UnixMilli(), string(outcome), runID, string(OutcomeRunning),
	)
}

func (store *Store) update(query string, args ...any) error {
	result, err := store.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary aggregates the runs started on the day containing day.
func (store *Store) Summary(day time.Time) (Summary, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	var (
		summary      Summary
		focusSeconds int64
		lastFinished sql.NullInt64
	)
	err := store.db.QueryRow(
		`SELECT
			COALESCE(SUM(CASE WHEN outcome = 'finished' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'abandoned' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'finished' THEN total_seconds ELSE 0 END), 0),
			MAX(CASE WHEN outcome = 'finished' THEN ended_at END)
		 FROM runs
		 WHERE started_at >= ? AND started_at < ?`,
		startOfDay.UnixMilli(),
		endOfDay.UnixMilli(),
	).Scan(&summary.Finished, &summary.Abandoned, &focusSeconds, &lastFinished)
	if err != nil {
		return Summary{}, fmt.Errorf("query summary: %w", err)
	}

	summary.Focus = time.Duration(focusSeconds) * time.Second
	if lastFinished.Valid {
		summary.LastFinished = time.UnixMilli(lastFinished.Int64).In(day.Location())
	}
	return summary, nil
}

// Recent returns up to limit runs, newest first.
func (store *Store) Recent(limit int) ([]Run, error) {
	rows, err := store.db.Query(
		`SELECT id, started_at, ended_at, total_seconds, outcome
		 FROM runs
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run          Run
			startedAt    int64
			endedAt      sql.NullInt64
			totalSeconds int64
			outcome      string
		)
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &totalSeconds, &outcome); err != nil {
			return nil, err
		}
		run.StartedAt = time.UnixMilli(startedAt)
		if endedAt.Valid {
			ended := time.UnixMilli(endedAt.Int64)
			run.EndedAt = &ended
		}
		run.Total = time.Duration(totalSeconds) * time.Second
		run.Outcome = Outcome(outcome)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
