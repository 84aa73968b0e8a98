package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/postgresengine/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const truncateAllTables = "TRUNCATE TABLE payments, loans, books, authors, library_users, circulation_events RESTART IDENTITY CASCADE"

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetStore() postgresengine.Store
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store postgresengine.Store
}

func (e *PGXPoolWrapper) GetStore() postgresengine.Store {
	return e.store
}

func (e *PGXPoolWrapper) Close() {
	e.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store postgresengine.Store
}

func (e *SQLDBWrapper) GetStore() postgresengine.Store {
	return e.store
}

func (e *SQLDBWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store postgresengine.Store
}

func (e *SQLXWrapper) GetStore() postgresengine.Store {
	return e.store
}

func (e *SQLXWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the wrapper selected by the ADAPTER_TYPE environment variable
// and makes sure the schema exists.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	var wrapper Wrapper

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool := config.PostgresPGXPoolTestConfig()

		store, err := postgresengine.NewStoreFromPGXPool(connPool, options...)
		assert.NoError(t, err, "error creating the store")

		wrapper = &PGXPoolWrapper{pool: connPool, store: store}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		assert.NoError(t, err, "error creating the store")

		wrapper = &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		assert.NoError(t, err, "error creating the store")

		wrapper = &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}

	assert.NoError(t, wrapper.GetStore().Migrate(context.Background()), "error migrating the schema in test setup")

	return wrapper
}

// CleanUp empties all tables for the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	var err error

	switch e := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err = e.pool.Exec(context.Background(), truncateAllTables)

	case *SQLDBWrapper:
		_, err = e.db.Exec(truncateAllTables)

	case *SQLXWrapper:
		_, err = e.db.Exec(truncateAllTables)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", e))
	}

	assert.NoError(t, err, "error cleaning up the tables")
}

// CorruptAvailability sets copies_available of a book directly, bypassing the store.
// It is used to provoke inventory invariant violations.
func CorruptAvailability(t testing.TB, wrapper Wrapper, bookID string, copiesAvailable int) {
	query := fmt.Sprintf("UPDATE books SET copies_available = %d WHERE id = '%s'", copiesAvailable, bookID)

	var err error

	switch e := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err = e.pool.Exec(context.Background(), query)

	case *SQLDBWrapper:
		_, err = e.db.Exec(query)

	case *SQLXWrapper:
		_, err = e.db.Exec(query)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", e))
	}

	assert.NoError(t, err, "error in arranging test data")
}
