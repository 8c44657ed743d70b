package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	labelservice "github.com/thenoetrevino/todox/internal/services/label"
)

// duplicateLabel names the conflicting label in the 409 detail
func duplicateLabel(err error, name string) error {
	if errors.Is(err, labelservice.ErrDuplicateLabel) {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("Label '%s' already exists", name)).SetInternal(err)
	}
	return err
}

func (s *Server) handleListLabels(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	labels, err := s.app.LabelService.ListLabels(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLabelResponses(labels))
}

func (s *Server) handleGetLabel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	label, err := s.app.LabelService.GetLabel(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLabelResponse(label))
}

func (s *Server) handleCreateLabel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var body labelRequest
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	name, err := body.name()
	if err != nil {
		return err
	}

	label, err := s.app.LabelService.CreateLabel(c.Request().Context(), labelservice.CreateLabelRequest{
		OwnerID: user.ID,
		Name:    name,
	})
	if err != nil {
		return duplicateLabel(err, name)
	}
	return c.JSON(http.StatusCreated, toLabelResponse(label))
}

func (s *Server) handleUpdateLabel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var body labelRequest
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	name, err := body.name()
	if err != nil {
		return err
	}

	label, err := s.app.LabelService.UpdateLabel(c.Request().Context(), labelservice.UpdateLabelRequest{
		ID:      c.Param("id"),
		OwnerID: user.ID,
		Name:    name,
	})
	if err != nil {
		return duplicateLabel(err, name)
	}
	return c.JSON(http.StatusOK, toLabelResponse(label))
}

func (s *Server) handleDeleteLabel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := s.app.LabelService.DeleteLabel(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
