// Package journal records settings mutations made through the CLI in a
// SQLite database so they can be reviewed later.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Operation names stored in the journal.
const (
	OpSet     = "set"
	OpClear   = "clear"
	OpRestore = "restore"
)

// Record is one journaled mutation.
type Record struct {
	CreatedAt    time.Time
	Op           string
	Key          string
	Value        string
	SettingsPath string
	ID           int64
}

// Journal is a SQLite backed mutation log.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at dsn and brings its schema
// up to date.
func Open(ctx context.Context, dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	j := &Journal{db: db}
	if err := j.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// Record appends a mutation to the journal.
func (j *Journal) Record(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO mutations (op, key, value, settings_path, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.Op, rec.Key, rec.Value, rec.SettingsPath, rec.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record %s of %q: %w", rec.Op, rec.Key, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, op, key, value, settings_path, created_at
		FROM mutations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Op, &rec.Key, &rec.Value, &rec.SettingsPath, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		rec.CreatedAt = time.Unix(0, createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal rows: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db != nil {
		if err := j.db.Close(); err != nil {
			return fmt.Errorf("failed to close journal database: %w", err)
		}
	}
	return nil
}
