package journal

import (
	"context"
	"fmt"
)

type migration struct {
	sql     string
	version int
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE mutations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				op TEXT NOT NULL,
				key TEXT NOT NULL,
				value TEXT NOT NULL DEFAULT '',
				created_at INTEGER NOT NULL
			);

			CREATE INDEX idx_mutations_created ON mutations(created_at);
		`,
	},
	{
		version: 2,
		sql: `ALTER TABLE mutations ADD COLUMN settings_path TEXT NOT NULL DEFAULT '';`,
	},
}

func (j *Journal) runMigrations(ctx context.Context) error {
	var currentVersion int
	err := j.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current journal version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if err := j.executeMigration(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) executeMigration(ctx context.Context, m migration) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", m.version, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to update journal version to %d: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
	}
	return nil
}

// Version reports the schema version of the journal database.
func (j *Journal) Version(ctx context.Context) (int, error) {
	var version int
	if err := j.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get journal version: %w", err)
	}
	return version, nil
}
