// Package auth composes the password codec, the token service and the user
// store into the register, login and change-password flows.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/events"
	"github.com/thenoetrevino/todox/internal/models"
)

// PasswordCodec hashes and verifies passwords
type PasswordCodec interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) bool
}

// TokenIssuer signs access tokens for a subject
type TokenIssuer interface {
	Issue(subjectID string, ttl time.Duration) (string, error)
	TTL() time.Duration
}

// Service defines all account-related business operations
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (models.PublicUser, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error
	Me(ctx context.Context, userID string) (models.PublicUser, error)
}

// RegisterRequest encapsulates data for creating an account
type RegisterRequest struct {
	Email    string
	Password string
}

// LoginRequest encapsulates a credential check
type LoginRequest struct {
	Email    string
	Password string
}

// UpdatePasswordRequest changes the password of an already resolved user
type UpdatePasswordRequest struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// LoginResult is what a successful login hands back to the caller
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// service implements Service interface
type service struct {
	users       database.UserRepository
	codec       PasswordCodec
	tokens      TokenIssuer
	eventClient events.EventPublisher
}

// NewService creates a new auth service
func NewService(users database.UserRepository, codec PasswordCodec, tokens TokenIssuer, eventClient events.EventPublisher) Service {
	return &service{
		users:       users,
		codec:       codec,
		tokens:      tokens,
		eventClient: eventClient,
	}
}

// Register creates an account. The existence check only rejects the common
// case early; the store's unique index decides races, and both paths report
// ErrEmailTaken.
func (s *service) Register(ctx context.Context, req RegisterRequest) (models.PublicUser, error) {
	if req.Email == "" {
		return models.PublicUser{}, ErrEmptyEmail
	}
	if err := validatePassword(req.Password, ErrPasswordTooShort, ErrPasswordTooLong); err != nil {
		return models.PublicUser{}, err
	}

	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return models.PublicUser{}, ErrEmailTaken
	}

	hash, err := s.codec.Hash(ctx, req.Password)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, req.Email, hash)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return models.PublicUser{}, ErrEmailTaken
		}
		return models.PublicUser{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.publish(events.EventUserRegistered, user.ID)
	return user.Public(), nil
}

// Login verifies credentials and issues an access token
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.codec.Verify(ctx, req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
		ExpiresIn:   s.tokens.TTL(),
	}, nil
}

// UpdatePassword re-checks the current password before storing the new hash
func (s *service) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	if err := validatePassword(req.NewPassword, ErrNewPasswordTooShort, ErrNewPasswordTooLong); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if !s.codec.Verify(ctx, req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.codec.Hash(ctx, req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdateUserPasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.publish(events.EventUserPasswordChanged, user.ID)
	return nil
}

// Me returns the public projection of an already authenticated user
func (s *service) Me(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return models.PublicUser{}, ErrInvalidCredentials
	}
	return user.Public(), nil
}

func validatePassword(password string, tooShort, tooLong error) error {
	if utf8.RuneCountInString(password) < models.MinPasswordLength {
		return tooShort
	}
	if len(password) > MaxPasswordBytes {
		return tooLong
	}
	return nil
}

func (s *service) publish(eventType events.EventType, userID string) {
	if s.eventClient == nil {
		return
	}
	events.Publish(s.eventClient, events.NewEvent(eventType, userID, userID))
}
