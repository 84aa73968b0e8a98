package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell/config"
)

// flagOverrides are the command line flags that take precedence over the environment.
type flagOverrides struct {
	addr      string
	dbAdapter string
}

func (f flagOverrides) applyTo(cfg *config.Config) {
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.dbAdapter != "" {
		cfg.Database.Adapter = f.dbAdapter
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "libraryd",
		Short:         "Library circulation service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())

	return root
}

// loadConfig reads the environment, applies the flags and validates the result.
func loadConfig(flags flagOverrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags.applyTo(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func addDBAdapterFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "db-adapter", "",
		"database adapter: pgx.pool, sql.db, sqlx.db or memory (overrides DB_ADAPTER)")
}
