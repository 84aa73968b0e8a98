// Package config provides PostgreSQL database configuration for the circulation store tests.
//
// It contains factory functions for the three supported adapters (pgx.Pool, sql.DB, sqlx.DB),
// all pointing to the test database.
package config
