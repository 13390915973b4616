package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var Schema = []string{`
CREATE TABLE IF NOT EXISTS users (
  id            TEXT PRIMARY KEY,
  email         TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL
)`}

const pgUniqueViolation = "23505"

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, u User) error {
	const q = `
INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1,$2,$3,$4)
`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	return r.get(ctx, q, email)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	return r.get(ctx, q, id)
}

func (r *PostgresRepo) get(ctx context.Context, q, arg string) (User, error) {
	var u User
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
