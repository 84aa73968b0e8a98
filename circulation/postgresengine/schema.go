package postgresengine

import (
	"context"
	_ "embed"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

//go:embed schema.sql
var schemaSQL string

const eventsTablePlaceholder = "{{events_table}}"

// Schema returns the DDL of all tables, with the configured event table name.
func (s Store) Schema() string {
	return strings.ReplaceAll(schemaSQL, eventsTablePlaceholder, s.eventTableName)
}

// Migrate creates all tables, sequences and indexes that do not exist yet. It is safe to run repeatedly.
func (s Store) Migrate(ctx context.Context) error {
	return s.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		return tx.(*pgTx).execRaw(ctx, "migrate schema", s.Schema())
	})
}
