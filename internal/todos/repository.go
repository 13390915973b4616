package todos

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("todos: not found")
	ErrInvalidRequest = errors.New("todos: invalid request")
)

// Repository persists todos. Every read and write is scoped to the owning user;
// a todo belonging to someone else is reported as ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, t Todo) error
	Get(ctx context.Context, userID, id string) (Todo, error)
	// ListByUser returns the user's todos, newest first.
	ListByUser(ctx context.Context, userID string) ([]Todo, error)
	Update(ctx context.Context, t Todo) error
	Delete(ctx context.Context, userID, id string) error
}
