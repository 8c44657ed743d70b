package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todox/internal/config"
	"github.com/thenoetrevino/todox/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "todox",
	Short: "Todox - a multi-user task and label API",
	Long: `Todox serves a JSON API for registering accounts and managing
per-user tasks and labels, backed by SQLite or MongoDB.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $XDG_CONFIG_HOME/todox/config.yaml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration and installs the process logger.
// The returned closer releases the log file.
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	closer, err := logging.Init(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, closer, nil
}
