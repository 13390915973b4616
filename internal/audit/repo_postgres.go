package audit

import (
	"context"
	"database/sql"
)

// Schema creates the insert-only events table.
var Schema = []string{`
CREATE TABLE IF NOT EXISTS audit_events (
  id         TEXT PRIMARY KEY,
  user_id    TEXT NOT NULL,
  type       TEXT NOT NULL,
  ip_address TEXT NOT NULL DEFAULT '',
  ref        TEXT NOT NULL DEFAULT '',
  message    TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL
)`}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (id, user_id, type, ip_address, ref, message, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := r.db.ExecContext(ctx, q, e.ID, e.UserID, e.Type, e.IPAddress, e.Ref, e.Message, e.CreatedAt)
	return err
}
