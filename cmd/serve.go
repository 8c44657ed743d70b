package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todox/internal/app"
	"github.com/thenoetrevino/todox/internal/auth/password"
	"github.com/thenoetrevino/todox/internal/auth/token"
	"github.com/thenoetrevino/todox/internal/config"
	"github.com/thenoetrevino/todox/internal/events"
	"github.com/thenoetrevino/todox/internal/logging"
	"github.com/thenoetrevino/todox/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logCloser, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logCloser.Close() }()

			// Set up signal handling for graceful shutdown
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg)
		},
	}
}

// serve wires storage, auth and services into the HTTP server and blocks
// until ctx is cancelled
func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.UsesDefaultSecret() {
		slog.Warn("using the built-in JWT secret; set JWT_SECRET before exposing this server")
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	codec, err := password.NewCodec(
		password.WithCost(cfg.Auth.BcryptCost),
		password.WithConcurrency(cfg.Auth.HashConcurrency),
	)
	if err != nil {
		return fmt.Errorf("failed to create password codec: %w", err)
	}
	tokens, err := token.NewService(token.Config{
		Secret:    cfg.Auth.JWTSecret,
		Algorithm: cfg.Auth.JWTAlgorithm,
		TTL:       cfg.Auth.TokenTTL(),
	})
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	metrics := server.NewMetrics()
	bus := events.NewBus(
		events.WithSink(events.LogSink(logging.Logger)),
		events.WithSink(metrics.EventSink()),
	)

	application := app.New(st, codec, tokens,
		app.WithEventPublisher(bus),
		app.WithLogger(logging.Logger),
	)
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("failed to close application", "error", err)
		}
	}()

	srv := server.NewServer(application, server.Options{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigins:     cfg.CORS.Origins,
		Logger:          logging.Logger,
		Metrics:         metrics,
	})

	slog.Info("todox starting", "addr", cfg.Server.Addr, "driver", cfg.Storage.Driver, "pid", os.Getpid())
	if err := srv.Start(ctx); err != nil {
		return err
	}
	slog.Info("todox shut down gracefully")
	return nil
}
