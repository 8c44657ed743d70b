package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	authservice "github.com/thenoetrevino/todox/internal/services/auth"
)

func (s *Server) handleRegister(c echo.Context) error {
	var body credentialsRequest
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	if err := validateEmail(body.Email); err != nil {
		return err
	}

	user, err := s.app.AuthService.Register(c.Request().Context(), authservice.RegisterRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(c echo.Context) error {
	var body credentialsRequest
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	if err := validateEmail(body.Email); err != nil {
		return err
	}

	result, err := s.app.AuthService.Login(c.Request().Context(), authservice.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTokenResponse(result))
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user.Public()))
}

func (s *Server) handleUpdatePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var body updatePasswordRequest
	if err := bindJSON(c, &body); err != nil {
		return err
	}

	err = s.app.AuthService.UpdatePassword(c.Request().Context(), authservice.UpdatePasswordRequest{
		UserID:          user.ID,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
