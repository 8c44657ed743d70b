package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thenoetrevino/todox/internal/auth/identity"
	"github.com/thenoetrevino/todox/internal/models"
	authservice "github.com/thenoetrevino/todox/internal/services/auth"
	labelservice "github.com/thenoetrevino/todox/internal/services/label"
	taskservice "github.com/thenoetrevino/todox/internal/services/task"
)

const (
	detailNotAuthenticated   = "Not authenticated"
	detailInvalidToken       = "Could not validate credentials"
	detailBadCredentials     = "Incorrect email or password"
	detailEmailTaken         = "Email already registered"
	detailTaskNotFound       = "Task not found"
	detailLabelNotFound      = "Label not found"
	detailInternalError      = "Internal server error"
	detailInvalidRequestBody = "Invalid request body"
)

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Detail string `json:"detail"`
}

// httpError pairs a status code with the detail to report
type httpError struct {
	status int
	detail string
}

// classify maps a service error onto its HTTP status and detail
func classify(err error) httpError {
	var validation *models.ValidationError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &echoErr):
		if msg, ok := echoErr.Message.(string); ok {
			return httpError{echoErr.Code, msg}
		}
		return httpError{echoErr.Code, http.StatusText(echoErr.Code)}

	case errors.As(err, &validation):
		return httpError{http.StatusUnprocessableEntity, validation.Error()}
	case errors.Is(err, models.ErrValidation):
		return httpError{http.StatusUnprocessableEntity, err.Error()}

	case errors.Is(err, authservice.ErrEmailTaken):
		return httpError{http.StatusConflict, detailEmailTaken}
	case errors.Is(err, labelservice.ErrDuplicateLabel):
		return httpError{http.StatusConflict, err.Error()}

	case errors.Is(err, identity.ErrMissingCredentials):
		return httpError{http.StatusUnauthorized, detailNotAuthenticated}
	case errors.Is(err, identity.ErrInvalidToken):
		return httpError{http.StatusUnauthorized, detailInvalidToken}
	case errors.Is(err, authservice.ErrInvalidCredentials):
		return httpError{http.StatusUnauthorized, detailBadCredentials}

	case errors.Is(err, taskservice.ErrTaskNotFound):
		return httpError{http.StatusNotFound, detailTaskNotFound}
	case errors.Is(err, labelservice.ErrLabelNotFound):
		return httpError{http.StatusNotFound, detailLabelNotFound}
	}
	return httpError{http.StatusInternalServerError, detailInternalError}
}

// handleError is the echo HTTPErrorHandler. It renders {"detail": ...} and
// logs anything that maps to a 5xx.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := classify(err)
	if he.status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}
	if he.status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(he.status)
	} else {
		writeErr = c.JSON(he.status, errorResponse{Detail: he.detail})
	}
	if writeErr != nil {
		s.logger.Warn("failed to write error response", "error", writeErr)
	}
}

// invalidBody reports an undecodable request payload as a validation failure
func invalidBody() error {
	return models.NewValidationError("", detailInvalidRequestBody)
}
