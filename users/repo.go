package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned by Create when the email is already
	// registered. The check-and-insert is atomic: two concurrent creates
	// with the same email produce exactly one success.
	ErrDuplicateEmail = errors.New("email already registered")
)

type Repo interface {
	// Create stores a new user and assigns its ID. Fails with
	// ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *User) error

	// GetByEmail retrieves a user by email. Fails with ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID retrieves a user by ID. Fails with ErrNotFound.
	GetByID(ctx context.Context, id string) (*User, error)
}
