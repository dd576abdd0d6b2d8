// Package journal records command invocations in a small sqlite database
// under .armature/state/. The TUI reads it back for the recent-runs pane;
// nothing in the command layer depends on it being present.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded command invocation.
type Entry struct {
	ID        int64
	Command   string
	Status    string
	Message   string
	StartedAt time.Time
}

// Journal wraps the sqlite handle. A nil Journal discards records.
type Journal struct {
	db *sql.DB
}

// Open creates or reuses the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		command TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: ensure schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one invocation row.
func (j *Journal) Record(command, status, message string, startedAt time.Time) error {
	if j == nil || j.db == nil {
		return nil
	}
	_, err := j.db.Exec(
		`INSERT INTO invocations (command, status, message, started_at) VALUES (?, ?, ?, ?)`,
		command, status, message, startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("journal: record %s: %w", command, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if j == nil || j.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := j.db.Query(
		`SELECT id, command, status, message, started_at FROM invocations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: query recent: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var started string
		if err := rows.Scan(&e.ID, &e.Command, &e.Status, &e.Message, &started); err != nil {
			return nil, fmt.Errorf("journal: scan row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, started); err == nil {
			e.StartedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
