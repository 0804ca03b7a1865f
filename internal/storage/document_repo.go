package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DocumentRepo is the sync daemon's document table: one serialized envelope
// per user code.
type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Put upserts the document stored under key.
func (r *DocumentRepo) Put(ctx context.Context, key string, body []byte, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, key, string(body), updatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("document put: %w", err)
	}
	return nil
}

// Get reads the document stored under key. Returns (nil, zero, nil) when the
// key has never been written.
func (r *DocumentRepo) Get(ctx context.Context, key string) ([]byte, time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT body, updated_at FROM documents WHERE key = ?`, key)

	var body string
	var updatedMS int64
	if err := row.Scan(&body, &updatedMS); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("document get: %w", err)
	}
	return []byte(body), time.UnixMilli(updatedMS), nil
}
