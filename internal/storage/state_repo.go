package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"soloquest/internal/engine"
)

// StateKey is the namespace key for the local aggregate. The version suffix
// guards against loading an incompatible shape after a schema change.
const StateKey = "soloquest-state-v1"

// StateRepo persists the whole aggregate as one JSON document.
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Load reads the persisted aggregate. Returns (nil, nil) when no state has
// been saved yet.
func (r *StateRepo) Load(ctx context.Context) (*engine.State, error) {
	row := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, StateKey)

	var body string
	if err := row.Scan(&body); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("state load: %w", err)
	}

	var st engine.State
	if err := json.Unmarshal([]byte(body), &st); err != nil {
		return nil, fmt.Errorf("state decode: %w", err)
	}
	if st.History == nil {
		st.History = map[string]engine.DayProgress{}
	}
	return &st, nil
}

// Save upserts the aggregate under the namespace key.
func (r *StateRepo) Save(ctx context.Context, st engine.State) error {
	body, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, StateKey, string(body), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("state save: %w", err)
	}
	return nil
}
