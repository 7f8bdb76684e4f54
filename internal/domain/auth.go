// Package domain contains the core business entities, the repository ports and
// the summary computations over a person's weight history.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by services when a record does not exist or is not
// owned by the requesting user.
var ErrNotFound = errors.New("not found")

// User represents an account that owns tracked persons.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRepository defines the port for user persistence operations.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, email, passwordHash string) (*User, error)
}
