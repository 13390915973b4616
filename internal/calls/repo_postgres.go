package calls

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var Schema = []string{`
CREATE TABLE IF NOT EXISTS call_logs (
  id            TEXT PRIMARY KEY,
  user_id       TEXT NOT NULL,
  call_sid      TEXT NOT NULL UNIQUE,
  to_number     TEXT NOT NULL,
  from_number   TEXT NOT NULL,
  career_path   TEXT NOT NULL,
  status        TEXT NOT NULL,
  duration      INT NOT NULL DEFAULT 0,
  notes         TEXT NOT NULL DEFAULT '',
  recording_url TEXT NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL,
  updated_at    TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS call_logs_user_created_idx ON call_logs (user_id, created_at DESC)`,
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const callLogColumns = `id, user_id, call_sid, to_number, from_number, career_path, status, duration, notes, recording_url, created_at, updated_at`

func (r *PostgresRepo) Insert(ctx context.Context, l CallLog) error {
	const q = `
INSERT INTO call_logs (` + callLogColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`
	_, err := r.db.ExecContext(ctx, q,
		l.ID,
		l.UserID,
		l.CallSID,
		l.To,
		l.From,
		l.CareerPath,
		l.Status,
		l.DurationSeconds,
		l.Notes,
		l.RecordingURL,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) GetByCallSID(ctx context.Context, callSID string) (CallLog, error) {
	const q = `SELECT ` + callLogColumns + ` FROM call_logs WHERE call_sid = $1`
	l, err := scanCallLog(r.db.QueryRowContext(ctx, q, callSID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallLog{}, ErrNotFound
		}
		return CallLog{}, err
	}
	return l, nil
}

// UpdateStatus locks the row in a subquery so the returned prior state is the one
// this statement replaced.
func (r *PostgresRepo) UpdateStatus(ctx context.Context, callSID string, status CallStatus, durationSeconds int, at time.Time) (CallLog, error) {
	const q = `
UPDATE call_logs c
SET status = $2, duration = $3, updated_at = $4
FROM (SELECT ` + callLogColumns + ` FROM call_logs WHERE call_sid = $1 FOR UPDATE) prev
WHERE c.call_sid = prev.call_sid
RETURNING prev.id, prev.user_id, prev.call_sid, prev.to_number, prev.from_number, prev.career_path,
  prev.status, prev.duration, prev.notes, prev.recording_url, prev.created_at, prev.updated_at
`
	l, err := scanCallLog(r.db.QueryRowContext(ctx, q, callSID, status, durationSeconds, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallLog{}, ErrNotFound
		}
		return CallLog{}, err
	}
	return l, nil
}

func (r *PostgresRepo) SetRecording(ctx context.Context, callSID, url string, at time.Time) error {
	const q = `UPDATE call_logs SET recording_url = $2, updated_at = $3 WHERE call_sid = $1`
	res, err := r.db.ExecContext(ctx, q, callSID, url, at)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]CallLog, error) {
	const q = `SELECT ` + callLogColumns + ` FROM call_logs WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CallLog, 0)
	for rows.Next() {
		l, err := scanCallLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCallLog(s rowScanner) (CallLog, error) {
	var l CallLog
	err := s.Scan(
		&l.ID,
		&l.UserID,
		&l.CallSID,
		&l.To,
		&l.From,
		&l.CareerPath,
		&l.Status,
		&l.DurationSeconds,
		&l.Notes,
		&l.RecordingURL,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
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
