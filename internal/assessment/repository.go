package assessment

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("assessment: not found")
	ErrInvalidRequest = errors.New("assessment: invalid request")
)

type Repository interface {
	Get(ctx context.Context, userID string) (History, error)
	// Upsert replaces the user's transcript.
	Upsert(ctx context.Context, h History) error
}
