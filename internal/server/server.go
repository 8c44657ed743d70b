// Package server exposes the application services over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/thenoetrevino/todox/internal/app"
	"github.com/thenoetrevino/todox/internal/auth/identity"
)

const (
	// DefaultShutdownTimeout bounds how long Start waits for in-flight requests
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultBodyLimit caps request bodies
	DefaultBodyLimit = "1M"

	rootMessage = "Todox API - Use /docs for API documentation"
)

// Options configures a Server
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	BodyLimit       string
	Logger          *slog.Logger
	Metrics         *Metrics // A fresh Metrics is created when nil
}

// Server is the HTTP front end of the application
type Server struct {
	echo     *echo.Echo
	app      *app.App
	resolver *identity.Resolver
	metrics  *Metrics
	logger   *slog.Logger

	addr            string
	shutdownTimeout time.Duration
}

// NewServer builds the router and middleware chain for a
func NewServer(a *app.App, opts Options) *Server {
	s := &Server{
		echo:            echo.New(),
		app:             a,
		resolver:        a.Identity,
		metrics:         opts.Metrics,
		logger:          opts.Logger,
		addr:            opts.Addr,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.logger == nil {
		s.logger = a.Logger()
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = DefaultShutdownTimeout
	}
	bodyLimit := opts.BodyLimit
	if bodyLimit == "" {
		bodyLimit = DefaultBodyLimit
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(s.logger))
	e.Use(s.recordMetrics)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit(bodyLimit))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/", s.handleRoot)
	e.GET("/health", s.handleHealth)

	auth := e.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.GET("/me", s.handleMe, s.requireUser)
	auth.PATCH("/password", s.handleUpdatePassword, s.requireUser)

	tasks := e.Group("/tasks", s.requireUser)
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTask)
	tasks.GET("/:id", s.handleGetTask)
	tasks.PATCH("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)

	labels := e.Group("/labels", s.requireUser)
	labels.GET("", s.handleListLabels)
	labels.POST("", s.handleCreateLabel)
	labels.GET("/:id", s.handleGetLabel)
	labels.PATCH("/:id", s.handleUpdateLabel)
	labels.DELETE("/:id", s.handleDeleteLabel)
}

// Handler returns the router, for use with httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Metrics returns the live counters served on /health
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Addr returns the bound listener address, or nil before Start has bound it
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		err := s.echo.Start(s.addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	s.logger.Info("server starting", "addr", s.addr)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("server context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	s.logger.Info("server stopped", "requests_total", s.metrics.GetRequestsTotal())
	return nil
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: rootMessage})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "healthy",
		Metrics: s.metrics.GetSnapshot(),
	})
}
