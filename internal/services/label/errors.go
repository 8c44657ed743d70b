package label

import (
	"errors"

	"github.com/thenoetrevino/todox/internal/models"
)

// Label-related errors
var (
	// Validation errors
	ErrEmptyName    = models.NewValidationError("name", "name cannot be empty")
	ErrNameTooLong  = models.NewValidationError("name", "name cannot exceed %d characters", models.MaxLabelNameLength)
	ErrEmptyOwnerID = errors.New("owner ID is required")

	// Business logic errors
	ErrLabelNotFound  = errors.New("label not found")
	ErrDuplicateLabel = errors.New("label with this name already exists")
)
