// Package postgreswrapper abstracts over the supported database adapters in tests.
//
// The ADAPTER_TYPE environment variable selects pgx.pool (default), sql.db or sqlx.db,
// so the same test suite runs against every adapter.
package postgreswrapper
