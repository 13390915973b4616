package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("users: not found")
	ErrEmailTaken         = errors.New("users: email already registered")
	ErrInvalidCredentials = errors.New("users: invalid email or password")
	ErrInvalidRequest     = errors.New("users: invalid request")
)

// Repository stores accounts. Emails are unique; Insert reports ErrEmailTaken.
type Repository interface {
	Insert(ctx context.Context, u User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
