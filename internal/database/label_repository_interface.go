package database

import (
	"context"

	"github.com/thenoetrevino/todox/internal/models"
)

// LabelReader defines owner-scoped read operations for labels.
type LabelReader interface {
	// GetLabelsByOwner returns the owner's labels ordered by name ascending
	GetLabelsByOwner(ctx context.Context, ownerID string) ([]*models.Label, error)
	// GetLabelByID returns nil when the label is missing or owned by someone else
	GetLabelByID(ctx context.Context, id, ownerID string) (*models.Label, error)
}

// LabelWriter defines owner-scoped write operations for labels.
type LabelWriter interface {
	// CreateLabel returns ErrDuplicateLabel if (ownerID, name) exists
	CreateLabel(ctx context.Context, ownerID, name string) (*models.Label, error)
	// UpdateLabel returns nil when absent/not owned, ErrDuplicateLabel on a name clash
	UpdateLabel(ctx context.Context, id, ownerID, name string) (*models.Label, error)
	// DeleteLabel removes the label from the owner's tasks, then the label itself
	DeleteLabel(ctx context.Context, id, ownerID string) (bool, error)
}

// LabelRepository combines all label-related operations.
type LabelRepository interface {
	LabelReader
	LabelWriter
}
