package models

import "time"

// User is an account that owns tasks and labels.
// PasswordHash never leaves the store/codec boundary; use Public for anything
// that is sent back to a caller.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the response-facing projection of a User (no password hash)
type PublicUser struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public strips the password hash from the user
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
