package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/todox/internal/config"
	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/database/mongostore"
)

// store is the configured DataStore plus its shutdown hook
type store struct {
	database.DataStore
	close func(ctx context.Context) error
}

// openStore connects to the configured backend and brings its schema up to
// date: migrations for SQLite, indexes for MongoDB.
func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		s, err := mongostore.Open(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			if cErr := s.Close(ctx); cErr != nil {
				slog.Error("failed to close mongo store", "error", cErr)
			}
			return nil, err
		}
		slog.Info("storage ready", "driver", config.DriverMongo, "database", cfg.Storage.MongoDatabase)
		return &store{DataStore: s, close: s.Close}, nil

	case config.DriverSQLite:
		db, err := database.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo := database.NewRepository(db)
		slog.Info("storage ready", "driver", config.DriverSQLite, "path", cfg.Storage.SQLitePath)
		return &store{
			DataStore: repo,
			close:     func(context.Context) error { return repo.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// Close releases the backend connection
func (s *store) Close(ctx context.Context) error {
	return s.close(ctx)
}
