package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the storage schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logCloser, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logCloser.Close() }()

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := st.Close(context.Background()); err != nil {
				return err
			}

			slog.Info("migrations applied", "driver", cfg.Storage.Driver)
			return nil
		},
	}
}
