package database

import (
	"context"

	"github.com/thenoetrevino/todox/internal/models"
)

// UserReader defines read operations for users.
// A nil user with a nil error means the user does not exist.
type UserReader interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	// CreateUser returns ErrDuplicateEmail when the email is taken, whether the
	// conflicting insert happened before or concurrently.
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	UpdateUserPasswordHash(ctx context.Context, id, passwordHash string) error
}

// UserRepository combines all user-related operations.
type UserRepository interface {
	UserReader
	UserWriter
}
