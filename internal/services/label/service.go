package label

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/events"
	"github.com/thenoetrevino/todox/internal/models"
)

// Service defines all label-related business operations.
// Every operation is scoped to the owner named in the request; a label that
// belongs to someone else is reported as ErrLabelNotFound.
type Service interface {
	// Read operations
	ListLabels(ctx context.Context, ownerID string) ([]*models.Label, error)
	GetLabel(ctx context.Context, ownerID, id string) (*models.Label, error)

	// Write operations
	CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error)
	UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)
	DeleteLabel(ctx context.Context, ownerID, id string) error
}

// CreateLabelRequest encapsulates data for creating a label
type CreateLabelRequest struct {
	OwnerID string
	Name    string
}

// UpdateLabelRequest encapsulates data for renaming a label
type UpdateLabelRequest struct {
	ID      string
	OwnerID string
	Name    string
}

// service implements Service interface
type service struct {
	repo        database.LabelRepository
	eventClient events.EventPublisher
}

// NewService creates a new label service
func NewService(repo database.LabelRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// ListLabels retrieves all of an owner's labels ordered by name
func (s *service) ListLabels(ctx context.Context, ownerID string) ([]*models.Label, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}
	return s.repo.GetLabelsByOwner(ctx, ownerID)
}

// GetLabel retrieves one label owned by ownerID
func (s *service) GetLabel(ctx context.Context, ownerID, id string) (*models.Label, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}
	if id == "" {
		return nil, ErrLabelNotFound
	}

	label, err := s.repo.GetLabelByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	if label == nil {
		return nil, ErrLabelNotFound
	}
	return label, nil
}

// CreateLabel creates a new label with validation
func (s *service) CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error) {
	if req.OwnerID == "" {
		return nil, ErrEmptyOwnerID
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	label, err := s.repo.CreateLabel(ctx, req.OwnerID, req.Name)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateLabel) {
			return nil, ErrDuplicateLabel
		}
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	s.publishLabelEvent(events.EventLabelCreated, label)
	return label, nil
}

// UpdateLabel renames an existing label
func (s *service) UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error) {
	if req.OwnerID == "" {
		return nil, ErrEmptyOwnerID
	}
	if req.ID == "" {
		return nil, ErrLabelNotFound
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	label, err := s.repo.UpdateLabel(ctx, req.ID, req.OwnerID, req.Name)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateLabel) {
			return nil, ErrDuplicateLabel
		}
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	if label == nil {
		return nil, ErrLabelNotFound
	}

	s.publishLabelEvent(events.EventLabelUpdated, label)
	return label, nil
}

// DeleteLabel deletes a label and strips it from the owner's tasks
func (s *service) DeleteLabel(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrEmptyOwnerID
	}
	if id == "" {
		return ErrLabelNotFound
	}

	deleted, err := s.repo.DeleteLabel(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	if !deleted {
		return ErrLabelNotFound
	}

	s.publishLabelEvent(events.EventLabelDeleted, &models.Label{ID: id, OwnerID: ownerID})
	return nil
}

// validateName checks the 1-50 character rule, counting runes
func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxLabelNameLength {
		return ErrNameTooLong
	}
	return nil
}

// publishLabelEvent publishes a label event if event client exists
func (s *service) publishLabelEvent(eventType events.EventType, label *models.Label) {
	if s.eventClient == nil {
		return
	}
	events.Publish(s.eventClient, events.NewEvent(eventType, label.OwnerID, label.ID))
}
