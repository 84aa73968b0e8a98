// Package config loads the process configuration of libraryd from environment variables
// and builds the database connections and OpenTelemetry providers from it.
//
// Key environment variables:
//
//	HTTP_ADDR                        - listen address (default ":8080")
//	DATABASE_URL                     - primary PostgreSQL DSN
//	DATABASE_REPLICA_URL             - optional replica DSN for eventually consistent reads
//	DB_ADAPTER                       - pgx.pool | sql.db | sqlx.db | memory (default "pgx.pool")
//	FEE_PER_DAY                      - late fee per whole day past the due date (default "5")
//	PAYMENT_PROVIDER_BASE_URL        - base URL of the Stripe-compatible API
//	PAYMENT_PROVIDER_SECRET_KEY      - API key, sent as bearer token
//	PAYMENT_PROVIDER_WEBHOOK_SECRET  - secret for the notification signatures
//	PAYMENT_PROVIDER_TIMEOUT         - bound for one provider call (default 10s)
//	PUBLIC_BASE_URL                  - base of the success and cancel URLs
//	OTEL_ENABLED                     - export traces, metrics and logs via OTLP gRPC
//	OTEL_EXPORTER_OTLP_ENDPOINT      - collector endpoint (default "localhost:4317")
//
// This package is part of the shell (infrastructure) layer.
package config
