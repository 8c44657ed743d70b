// Package identity resolves the authenticated principal of a request from its
// bearer credential.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/todox/internal/auth/token"
	"github.com/thenoetrevino/todox/internal/models"
)

var (
	// ErrMissingCredentials is returned when no bearer value is present
	ErrMissingCredentials = errors.New("not authenticated")

	// ErrInvalidToken is returned for bad, expired, or stale tokens alike
	ErrInvalidToken = token.ErrInvalidToken
)

// TokenVerifier verifies a raw token and returns its claims
type TokenVerifier interface {
	Verify(raw string) (token.Claims, error)
}

// UserFinder looks up users by id. A nil user with nil error means absent.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Resolver turns an Authorization header value into a User.
// It never caches across calls.
type Resolver struct {
	tokens TokenVerifier
	users  UserFinder
}

// NewResolver creates a Resolver
func NewResolver(tokens TokenVerifier, users UserFinder) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve authenticates an "Authorization" header value.
// A token whose subject no longer exists is reported as ErrInvalidToken, not
// as a missing user, so stale and forged tokens look the same.
func (r *Resolver) Resolve(ctx context.Context, authHeader string) (*models.User, error) {
	raw, ok := BearerToken(authHeader)
	if !ok {
		return nil, ErrMissingCredentials
	}

	claims, err := r.tokens.Verify(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := r.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for token: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// BearerToken extracts the credential from a "Bearer <token>" header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, value, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// userContextKey is the context key for the authenticated user
type userContextKey struct{}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user stored in ctx, if any
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	return user, ok && user != nil
}
