package server

import (
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/thenoetrevino/todox/internal/models"
	taskservice "github.com/thenoetrevino/todox/internal/services/task"
)

var (
	errInvalidEmail     = models.NewValidationError("email", "value is not a valid email address")
	errTitleRequired    = models.NewValidationError("title", "field required")
	errPriorityRequired = models.NewValidationError("priority", "field required")
	errInvalidDeadline  = models.NewValidationError("deadline", "deadline must be a date in YYYY-MM-DD form")
	errNameRequired     = models.NewValidationError("name", "field required")
)

// bindJSON decodes the request body into dst, reporting any decode failure
// as a validation error. Path and query parameters are never bound.
func bindJSON(c echo.Context, dst any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, dst); err != nil {
		return invalidBody()
	}
	return nil
}

// validateEmail accepts a bare address such as "a@b.co"; display names and
// angle brackets are rejected
func validateEmail(email string) error {
	if email == "" {
		return errInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errInvalidEmail
	}
	return nil
}

func parsePriority(s string) (models.Priority, error) {
	p, err := models.ParsePriority(s)
	if err != nil {
		return "", taskservice.ErrInvalidPriority
	}
	return p, nil
}

func parseStatus(s string) (models.Status, error) {
	st, err := models.ParseStatus(s)
	if err != nil {
		return "", taskservice.ErrInvalidStatus
	}
	return st, nil
}

func parseDeadline(s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, errInvalidDeadline
	}
	return d, nil
}

// toCreateRequest checks presence and wire formats; length limits are left
// to the task service
func (r createTaskRequest) toCreateRequest(ownerID string) (taskservice.CreateTaskRequest, error) {
	req := taskservice.CreateTaskRequest{OwnerID: ownerID, LabelIDs: r.LabelIDs}

	if r.Title == nil {
		return req, errTitleRequired
	}
	req.Title = *r.Title

	if r.Description != nil {
		req.Description = *r.Description
	}

	if r.Priority == nil {
		return req, errPriorityRequired
	}
	p, err := parsePriority(*r.Priority)
	if err != nil {
		return req, err
	}
	req.Priority = p

	if r.Deadline == nil {
		return req, taskservice.ErrMissingDeadline
	}
	d, err := parseDeadline(*r.Deadline)
	if err != nil {
		return req, err
	}
	req.Deadline = d

	if req.LabelIDs == nil {
		req.LabelIDs = []string{}
	}
	return req, nil
}

// toPatch converts the provided fields into a TaskPatch
func (r updateTaskRequest) toPatch() (models.TaskPatch, error) {
	patch := models.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		LabelIDs:    r.LabelIDs,
	}

	if r.Priority != nil {
		p, err := parsePriority(*r.Priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if r.Deadline != nil {
		d, err := parseDeadline(*r.Deadline)
		if err != nil {
			return patch, err
		}
		patch.Deadline = &d
	}
	if r.Status != nil {
		st, err := parseStatus(*r.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &st
	}
	return patch, nil
}

func (r labelRequest) name() (string, error) {
	if r.Name == nil {
		return "", errNameRequired
	}
	return *r.Name, nil
}
