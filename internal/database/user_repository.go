package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/todox/internal/models"
)

// UserRepo handles pure data access for users
type UserRepo struct {
	db  *sql.DB
	now func() time.Time
}

const userColumns = `id, email, password_hash, created_at, updated_at`

// Create inserts a new user. Uniqueness is decided by the email index at write
// time, so two racing registrations cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	now := r.now().UTC()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, email, passwordHash, toNanos(now), toNanos(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    fromNanos(toNanos(now)),
		UpdatedAt:    fromNanos(toNanos(now)),
	}, nil
}

// GetByEmail returns the user with this exact email, or nil
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetByID returns the user with this id, or nil
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// UpdatePasswordHash replaces the hash and refreshes updated_at
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, toNanos(r.now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", id, err)
	}
	return nil
}

// scanUser returns nil, nil when the row does not exist
func scanUser(row rowScanner) (*models.User, error) {
	var (
		user      models.User
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.CreatedAt = fromNanos(createdAt)
	user.UpdatedAt = fromNanos(updatedAt)
	return &user, nil
}
