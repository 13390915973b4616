package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

var Schema = []string{`
CREATE TABLE IF NOT EXISTS assessment_histories (
  user_id    TEXT PRIMARY KEY,
  entries    JSONB NOT NULL DEFAULT '[]'::jsonb,
  updated_at TIMESTAMPTZ NOT NULL
)`}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Get(ctx context.Context, userID string) (History, error) {
	const q = `SELECT user_id, entries, updated_at FROM assessment_histories WHERE user_id = $1`
	var (
		h   History
		raw []byte
	)
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&h.UserID, &raw, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return History{}, ErrNotFound
		}
		return History{}, err
	}
	if err := json.Unmarshal(raw, &h.Entries); err != nil {
		return History{}, err
	}
	return h, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, h History) error {
	raw, err := json.Marshal(h.Entries)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO assessment_histories (user_id, entries, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET entries = EXCLUDED.entries, updated_at = EXCLUDED.updated_at
`
	_, err = r.db.ExecContext(ctx, q, h.UserID, raw, h.UpdatedAt)
	return err
}
