// Package adapters provides database adapter implementations for the postgres engine.
//
// This package contains adapters that abstract different PostgreSQL database drivers
// (pgx.Pool, sql.DB, sqlx.DB) behind a common transactional interface.
// It is internal and should not be used directly by external packages.
package adapters
