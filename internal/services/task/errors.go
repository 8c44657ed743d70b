package task

import (
	"errors"

	"github.com/thenoetrevino/todox/internal/models"
)

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = models.NewValidationError("title", "task title cannot be empty")
	ErrTitleTooLong    = models.NewValidationError("title", "task title cannot exceed %d characters", models.MaxTaskTitleLength)
	ErrInvalidPriority = models.NewValidationError("priority", "priority must be one of High, Medium, Low")
	ErrInvalidStatus   = models.NewValidationError("status", "status must be one of open, done")
	ErrMissingDeadline = models.NewValidationError("deadline", "deadline is required")
	ErrEmptyOwnerID    = errors.New("owner ID is required")

	// Business logic errors
	ErrTaskNotFound = errors.New("task not found")
)
