package auth

import (
	"errors"

	"github.com/thenoetrevino/todox/internal/models"
)

// MaxPasswordBytes is bcrypt's input limit
const MaxPasswordBytes = 72

// Auth-related errors
var (
	// Validation errors
	ErrEmptyEmail          = models.NewValidationError("email", "email cannot be empty")
	ErrPasswordTooShort    = models.NewValidationError("password", "password must be at least %d characters", models.MinPasswordLength)
	ErrPasswordTooLong     = models.NewValidationError("password", "password cannot exceed %d bytes", MaxPasswordBytes)
	ErrNewPasswordTooShort = models.NewValidationError("new_password", "password must be at least %d characters", models.MinPasswordLength)
	ErrNewPasswordTooLong  = models.NewValidationError("new_password", "password cannot exceed %d bytes", MaxPasswordBytes)

	// Business logic errors
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers every login and password-change failure
	// with the same message, whichever check failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
