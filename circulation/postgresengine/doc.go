// Package postgresengine provides a PostgreSQL implementation of the circulation store.
//
// Every workflow runs inside one READ COMMITTED transaction. Inventory and balance movements are
// single conditional updates, lifecycle transitions lock their row first, and the audit trail is
// appended in the same transaction as the state change. Three database adapters are supported
// (pgx, sql.DB, sqlx), each with an optional read replica for eventual consistency reads.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Serialization failures and deadlocks surface as circulation.ErrConcurrencyConflict
//   - Inventory invariant violations are logged at error level and never clamped
//   - Embedded, idempotent schema migration
//   - Optional logging, metrics and tracing through small interfaces
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithLogger(logger),
//		postgresengine.WithMetrics(metrics),
//	)
//
//	_ = store.Migrate(ctx)
//
//	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
//		_, err := tx.ReserveCopy(ctx, bookID)
//		return err
//	})
package postgresengine
