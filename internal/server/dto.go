package server

import (
	"time"

	"github.com/thenoetrevino/todox/internal/models"
	authservice "github.com/thenoetrevino/todox/internal/services/auth"
)

// ============================================================================
// Requests
// ============================================================================

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type labelRequest struct {
	Name *string `json:"name"`
}

type createTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Priority    *string  `json:"priority"`
	Deadline    *string  `json:"deadline"`
	LabelIDs    []string `json:"label_ids"`
}

// updateTaskRequest leaves absent (or null) fields nil.
// An explicit empty label_ids array clears the label set.
type updateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	Deadline    *string   `json:"deadline"`
	Status      *string   `json:"status"`
	LabelIDs    *[]string `json:"label_ids"`
}

// ============================================================================
// Responses
// ============================================================================

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status  string          `json:"status"`
	Metrics MetricsSnapshot `json:"metrics"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type labelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type taskResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Priority    string      `json:"priority"`
	Deadline    models.Date `json:"deadline"`
	Status      string      `json:"status"`
	LabelIDs    []string    `json:"label_ids"`
	OwnerID     string      `json:"owner_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func toUserResponse(u models.PublicUser) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTokenResponse(r *authservice.LoginResult) tokenResponse {
	return tokenResponse{
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		ExpiresIn:   int64(r.ExpiresIn / time.Second),
	}
}

func toLabelResponse(l *models.Label) labelResponse {
	return labelResponse{
		ID:        l.ID,
		Name:      l.Name,
		OwnerID:   l.OwnerID,
		CreatedAt: l.CreatedAt,
	}
}

func toLabelResponses(labels []*models.Label) []labelResponse {
	out := make([]labelResponse, len(labels))
	for i, l := range labels {
		out[i] = toLabelResponse(l)
	}
	return out
}

// toTaskResponse renders an empty description as null
func toTaskResponse(t *models.Task) taskResponse {
	var description *string
	if t.Description != "" {
		d := t.Description
		description = &d
	}
	labelIDs := t.LabelIDs
	if labelIDs == nil {
		labelIDs = []string{}
	}
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: description,
		Priority:    string(t.Priority),
		Deadline:    t.Deadline,
		Status:      string(t.Status),
		LabelIDs:    labelIDs,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*models.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}
