package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/thenoetrevino/todox/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*LabelRepo
	*TaskRepo

	db *sql.DB
}

// Option configures a Repository
type Option func(*repoConfig)

type repoConfig struct {
	now func() time.Time
}

// WithClock overrides the time source used to stamp created/updated times
func WithClock(now func() time.Time) Option {
	return func(cfg *repoConfig) {
		cfg.now = now
	}
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	cfg := repoConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Repository{
		UserRepo:  &UserRepo{db: db, now: cfg.now},
		LabelRepo: &LabelRepo{db: db, now: cfg.now},
		TaskRepo:  &TaskRepo{db: db, now: cfg.now},
		db:        db,
	}
}

// DB returns the raw database handle
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close releases the underlying database
func (r *Repository) Close() error {
	return r.db.Close()
}

// Wrapper methods for UserRepo to maintain existing API
func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	return r.UserRepo.Create(ctx, email, passwordHash)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.UserRepo.GetByEmail(ctx, email)
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.UserRepo.GetByID(ctx, id)
}

func (r *Repository) UpdateUserPasswordHash(ctx context.Context, id, passwordHash string) error {
	return r.UserRepo.UpdatePasswordHash(ctx, id, passwordHash)
}

// Wrapper methods for LabelRepo to maintain existing API
func (r *Repository) CreateLabel(ctx context.Context, ownerID, name string) (*models.Label, error) {
	return r.LabelRepo.Create(ctx, ownerID, name)
}

func (r *Repository) GetLabelsByOwner(ctx context.Context, ownerID string) ([]*models.Label, error) {
	return r.LabelRepo.GetByOwner(ctx, ownerID)
}

func (r *Repository) GetLabelByID(ctx context.Context, id, ownerID string) (*models.Label, error) {
	return r.LabelRepo.GetByID(ctx, id, ownerID)
}

func (r *Repository) UpdateLabel(ctx context.Context, id, ownerID, name string) (*models.Label, error) {
	return r.LabelRepo.Update(ctx, id, ownerID, name)
}

func (r *Repository) DeleteLabel(ctx context.Context, id, ownerID string) (bool, error) {
	return r.LabelRepo.Delete(ctx, id, ownerID)
}

// Wrapper methods for TaskRepo to maintain existing API
func (r *Repository) CreateTask(ctx context.Context, ownerID string, fields models.TaskFields) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, ownerID, fields)
}

func (r *Repository) GetTasksByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	return r.TaskRepo.GetByOwner(ctx, ownerID)
}

func (r *Repository) GetTaskByID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	return r.TaskRepo.GetByID(ctx, id, ownerID)
}

func (r *Repository) UpdateTask(ctx context.Context, id, ownerID string, patch models.TaskPatch) (*models.Task, error) {
	return r.TaskRepo.Update(ctx, id, ownerID, patch)
}

func (r *Repository) DeleteTask(ctx context.Context, id, ownerID string) (bool, error) {
	return r.TaskRepo.Delete(ctx, id, ownerID)
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
