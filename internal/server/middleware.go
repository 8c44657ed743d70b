package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/thenoetrevino/todox/internal/auth/identity"
	"github.com/thenoetrevino/todox/internal/models"
)

// requestLogger writes one slog record per request
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:  true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// recordMetrics counts requests and classifies their final status.
// Errors are rendered here so the status is known before it is recorded.
func (s *Server) recordMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.metrics.IncRequestsTotal()
		s.metrics.InFlight.Add(1)
		defer s.metrics.InFlight.Add(-1)

		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.metrics.RecordStatus(c.Response().Status)
		return err
	}
}

// requireUser resolves the bearer credential and stores the user in the
// request context. Requests without a valid credential never reach next.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		user, err := s.resolver.Resolve(req.Context(), req.Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.SetRequest(req.WithContext(identity.WithUser(req.Context(), user)))
		return next(c)
	}
}

// currentUser returns the user stored by requireUser
func currentUser(c echo.Context) (*models.User, error) {
	user, ok := identity.UserFromContext(c.Request().Context())
	if !ok {
		return nil, identity.ErrMissingCredentials
	}
	return user, nil
}
