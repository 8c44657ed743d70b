package task

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/events"
	"github.com/thenoetrevino/todox/internal/models"
)

// Service defines all task-related business operations.
// Tasks owned by someone other than the caller behave exactly like missing
// tasks: every such lookup fails with ErrTaskNotFound.
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, ownerID string) ([]*models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

// CreateTaskRequest encapsulates data for creating a task.
// Status defaults to open and LabelIDs to an empty set.
type CreateTaskRequest struct {
	OwnerID     string
	Title       string
	Description string
	Priority    models.Priority
	Deadline    models.Date
	Status      models.Status
	LabelIDs    []string
}

// UpdateTaskRequest encapsulates a partial task update
type UpdateTaskRequest struct {
	ID      string
	OwnerID string
	Patch   models.TaskPatch
}

// service implements Service interface
type service struct {
	repo        database.TaskRepository
	eventClient events.EventPublisher
}

// NewService creates a new task service
func NewService(repo database.TaskRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// ListTasks retrieves the owner's tasks, newest first
func (s *service) ListTasks(ctx context.Context, ownerID string) ([]*models.Task, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}
	return s.repo.GetTasksByOwner(ctx, ownerID)
}

// GetTask retrieves one task owned by ownerID
func (s *service) GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}
	if taskID == "" {
		return nil, ErrTaskNotFound
	}

	task, err := s.repo.GetTaskByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// CreateTask creates a new task with validation
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validateCreateTask(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusOpen
	}

	task, err := s.repo.CreateTask(ctx, req.OwnerID, models.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		Status:      status,
		LabelIDs:    req.LabelIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishTaskEvent(events.EventTaskCreated, task.OwnerID, task.ID)
	return task, nil
}

// UpdateTask merges the supplied fields into an existing task.
// An empty patch still refreshes updated_at.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.OwnerID == "" {
		return nil, ErrEmptyOwnerID
	}
	if req.ID == "" {
		return nil, ErrTaskNotFound
	}
	if err := validatePatch(req.Patch); err != nil {
		return nil, err
	}

	task, err := s.repo.UpdateTask(ctx, req.ID, req.OwnerID, req.Patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	s.publishTaskEvent(events.EventTaskUpdated, task.OwnerID, task.ID)
	return task, nil
}

// DeleteTask deletes a task
func (s *service) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if ownerID == "" {
		return ErrEmptyOwnerID
	}
	if taskID == "" {
		return ErrTaskNotFound
	}

	deleted, err := s.repo.DeleteTask(ctx, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}

	s.publishTaskEvent(events.EventTaskDeleted, ownerID, taskID)
	return nil
}

// validateCreateTask validates a CreateTaskRequest
func (s *service) validateCreateTask(req CreateTaskRequest) error {
	if req.OwnerID == "" {
		return ErrEmptyOwnerID
	}
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	if req.Deadline.IsZero() {
		return ErrMissingDeadline
	}
	if req.Status != "" && !req.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// validatePatch validates only the fields the patch supplies
func validatePatch(p models.TaskPatch) error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return ErrInvalidPriority
	}
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Deadline != nil && p.Deadline.IsZero() {
		return ErrMissingDeadline
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTaskTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// publishTaskEvent publishes a task event if event client exists
func (s *service) publishTaskEvent(eventType events.EventType, ownerID, taskID string) {
	if s.eventClient == nil {
		return
	}
	events.Publish(s.eventClient, events.NewEvent(eventType, ownerID, taskID))
}
