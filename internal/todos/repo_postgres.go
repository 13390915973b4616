package todos

import (
	"context"
	"database/sql"
	"errors"
)

// Schema is applied at boot when the postgres store is selected.
var Schema = []string{`
CREATE TABLE IF NOT EXISTS todos (
  id          TEXT PRIMARY KEY,
  user_id     TEXT NOT NULL,
  title       TEXT NOT NULL,
  description TEXT NOT NULL,
  status      TEXT NOT NULL,
  source      TEXT NOT NULL DEFAULT '',
  priority    TEXT NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS todos_user_created_idx ON todos (user_id, created_at DESC)`,
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, t Todo) error {
	const q = `
INSERT INTO todos (id, user_id, title, description, status, source, priority, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
	_, err := r.db.ExecContext(ctx, q,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.Status,
		t.Source,
		t.Priority,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, userID, id string) (Todo, error) {
	const q = `
SELECT id, user_id, title, description, status, source, priority, created_at, updated_at
FROM todos
WHERE user_id = $1 AND id = $2
`
	t, err := scanTodo(r.db.QueryRowContext(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return t, nil
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	const q = `
SELECT id, user_id, title, description, status, source, priority, created_at, updated_at
FROM todos
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, t Todo) error {
	const q = `
UPDATE todos
SET title = $3, description = $4, status = $5, priority = $6, updated_at = $7
WHERE user_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q, t.UserID, t.ID, t.Title, t.Description, t.Status, t.Priority, t.UpdatedAt)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PostgresRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(s rowScanner) (Todo, error) {
	var t Todo
	err := s.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Source,
		&t.Priority,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
