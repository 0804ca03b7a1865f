package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the document table. The aggregate is the unit of
// persistence, so the schema is a single key/value table: the client stores
// its state under a versioned namespace key, and the sync daemon stores one
// document per user code. Incompatible shapes get a new key, they never
// collide.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
