package app

import (
	"log/slog"

	"github.com/thenoetrevino/todox/internal/auth/identity"
	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/events"
	authservice "github.com/thenoetrevino/todox/internal/services/auth"
	labelservice "github.com/thenoetrevino/todox/internal/services/label"
	taskservice "github.com/thenoetrevino/todox/internal/services/task"
)

// Tokens both signs and verifies access tokens
type Tokens interface {
	authservice.TokenIssuer
	identity.TokenVerifier
}

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Change events for the audit log and metrics
	eventClient events.EventPublisher

	logger *slog.Logger

	// Service layer (business logic)
	AuthService  authservice.Service
	TaskService  taskservice.Service
	LabelService labelservice.Service

	// Identity resolves bearer credentials into users
	Identity *identity.Resolver
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, codec authservice.PasswordCodec, tokens Tokens, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &App{
		repo:         repo,
		eventClient:  cfg.eventClient,
		logger:       cfg.logger,
		AuthService:  authservice.NewService(repo, codec, tokens, cfg.eventClient),
		TaskService:  taskservice.NewService(repo, cfg.eventClient),
		LabelService: labelservice.NewService(repo, cfg.eventClient),
		Identity:     identity.NewResolver(tokens, repo),
	}
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close flushes and stops the event publisher.
// The repository is owned by the caller and stays open.
func (a *App) Close() error {
	if a.eventClient == nil {
		return nil
	}
	return a.eventClient.Close()
}
