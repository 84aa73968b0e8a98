package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
)

// migratableStore is a circulation store that can create its own schema.
type migratableStore interface {
	circulation.Store
	Migrate(ctx context.Context) error
}

type storeObservability struct {
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
	metrics          circulation.MetricsCollector
	tracing          circulation.TracingCollector
}

// openStore connects to the configured database. The returned close function releases all connections.
func openStore(ctx context.Context, cfg config.DatabaseConfig, obs storeObservability) (migratableStore, func(), error) {
	if cfg.Adapter == config.AdapterMemory {
		store, err := memoryengine.NewStore(
			memoryengine.WithLogger(obs.logger),
			memoryengine.WithContextualLogger(obs.contextualLogger),
		)
		if err != nil {
			return nil, nil, err
		}

		return store, func() {}, nil
	}

	options := []postgresengine.Option{
		postgresengine.WithEventTableName(cfg.EventTableName),
		postgresengine.WithLogger(obs.logger),
		postgresengine.WithContextualLogger(obs.contextualLogger),
	}
	if obs.metrics != nil {
		options = append(options, postgresengine.WithMetrics(obs.metrics))
	}
	if obs.tracing != nil {
		options = append(options, postgresengine.WithTracing(obs.tracing))
	}

	switch cfg.Adapter {
	case config.AdapterPGXPool:
		return openPGXStore(ctx, cfg, options)
	case config.AdapterSQLDB:
		return openSQLDBStore(ctx, cfg, options)
	case config.AdapterSQLXDB:
		return openSQLXStore(ctx, cfg, options)
	default:
		return nil, nil, fmt.Errorf("unknown database adapter: %s", cfg.Adapter)
	}
}

func openPGXStore(ctx context.Context, cfg config.DatabaseConfig, options []postgresengine.Option) (migratableStore, func(), error) {
	primary, err := config.NewPGXPool(ctx, cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	if cfg.ReplicaURL == "" {
		store, err := postgresengine.NewStoreFromPGXPool(primary, options...)
		if err != nil {
			primary.Close()
			return nil, nil, err
		}

		return store, primary.Close, nil
	}

	var replica *pgxpool.Pool
	if replica, err = config.NewPGXPool(ctx, cfg.ReplicaURL); err != nil {
		primary.Close()
		return nil, nil, fmt.Errorf("failed to connect to replica database: %w", err)
	}

	closeAll := func() {
		primary.Close()
		replica.Close()
	}

	store, err := postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return store, closeAll, nil
}

func openSQLDBStore(ctx context.Context, cfg config.DatabaseConfig, options []postgresengine.Option) (migratableStore, func(), error) {
	if cfg.ReplicaURL != "" {
		slog.WarnContext(ctx, "DATABASE_REPLICA_URL is ignored by the sql.db adapter")
	}

	db, err := config.NewSQLDB(ctx, cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	closeDB := func() { _ = db.Close() }

	store, err := postgresengine.NewStoreFromSQLDB(db, options...)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return store, closeDB, nil
}

func openSQLXStore(ctx context.Context, cfg config.DatabaseConfig, options []postgresengine.Option) (migratableStore, func(), error) {
	primary, err := config.NewSQLXDB(ctx, cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	if cfg.ReplicaURL == "" {
		store, err := postgresengine.NewStoreFromSQLX(primary, options...)
		if err != nil {
			_ = primary.Close()
			return nil, nil, err
		}

		return store, func() { _ = primary.Close() }, nil
	}

	var replica *sqlx.DB
	if replica, err = config.NewSQLXDB(ctx, cfg.ReplicaURL); err != nil {
		_ = primary.Close()
		return nil, nil, fmt.Errorf("failed to connect to replica database: %w", err)
	}

	closeAll := func() {
		_ = errors.Join(primary.Close(), replica.Close())
	}

	store, err := postgresengine.NewStoreFromSQLXAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return store, closeAll, nil
}
