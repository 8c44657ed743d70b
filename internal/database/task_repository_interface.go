package database

import (
	"context"

	"github.com/thenoetrevino/todox/internal/models"
)

// TaskReader defines owner-scoped read operations for tasks.
// A task owned by someone else is reported exactly like a missing one.
type TaskReader interface {
	// GetTasksByOwner returns the owner's tasks, newest first
	GetTasksByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	GetTaskByID(ctx context.Context, id, ownerID string) (*models.Task, error)
}

// TaskWriter defines owner-scoped write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, ownerID string, fields models.TaskFields) (*models.Task, error)
	// UpdateTask merges only the supplied fields; nil result means absent/not owned
	UpdateTask(ctx context.Context, id, ownerID string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id, ownerID string) (bool, error)
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}
