package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var flags flagOverrides

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			obs, err := setupObservability(ctx, cfg.Observability)
			if err != nil {
				return err
			}
			defer func() { _ = obs.shutdown(ctx) }()

			store, closeStore, err := openStore(ctx, cfg.Database, obs.store)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Migrate(ctx); err != nil {
				return err
			}

			obs.logger.InfoContext(ctx, "schema migrated", "adapter", cfg.Database.Adapter)

			return nil
		},
	}

	addDBAdapterFlag(cmd, &flags.dbAdapter)

	return cmd
}
