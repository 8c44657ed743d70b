package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	taskservice "github.com/thenoetrevino/todox/internal/services/task"
)

func (s *Server) handleListTasks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	tasks, err := s.app.TaskService.ListTasks(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

func (s *Server) handleGetTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	task, err := s.app.TaskService.GetTask(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleCreateTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var body createTaskRequest
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	req, err := body.toCreateRequest(user.ID)
	if err != nil {
		return err
	}

	task, err := s.app.TaskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var body updateTaskRequest
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	patch, err := body.toPatch()
	if err != nil {
		return err
	}

	task, err := s.app.TaskService.UpdateTask(c.Request().Context(), taskservice.UpdateTaskRequest{
		ID:      c.Param("id"),
		OwnerID: user.ID,
		Patch:   patch,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := s.app.TaskService.DeleteTask(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
