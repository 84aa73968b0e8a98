package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	defaultEventTableName      = "circulation_events"
	dialectPostgres            = "postgres"
	logMsgBeginTxFailed        = "failed to begin transaction"
	logMsgCommitTxFailed       = "failed to commit transaction"
	logMsgRollbackTxFailed     = "failed to roll back transaction"
	logMsgTxRolledBack         = "transaction rolled back"
	logMsgTxCommitted          = "transaction committed"
	logMsgBuildQueryFailed     = "failed to build query"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database statement execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgConcurrencyConflict  = "concurrency conflict detected"
	logMsgInvariantViolated    = "inventory invariant violated"
	logMsgCopyReserved         = "copy reserved"
	logMsgCopyReleased         = "copy released"
	logMsgBalanceChanged       = "balance changed"
	logMsgEventsAppended       = "events appended"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "store operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrDurationMS          = "duration_ms"
	logAttrOperation           = "operation"
	logAttrBookID              = "book_id"
	logAttrUserID              = "user_id"
	logAttrCopiesAvailable     = "copies_available"
	logAttrCopiesTotal         = "copies_total"
	logAttrAmount              = "amount"
	logAttrBalance             = "balance"
	logAttrEventCount          = "event_count"
	logAttrConsistency         = "consistency"
	operationReadTx            = "read_tx"
	operationWriteTx           = "write_tx"
	errorTypeBeginTx           = "begin_tx"
	errorTypeCommitTx          = "commit_tx"
	errorTypeConcurrency       = "concurrency_conflict"
	errorTypeInvariantViolated = "invariant_violated"
	errorTypeWorkflow          = "workflow"
)

// Store is the PostgreSQL implementation of the circulation store.
// Every workflow runs inside one read committed transaction and relies on row locks and conditional updates.
type Store struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
	metricsCollector circulation.MetricsCollector
	tracingCollector circulation.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary and a replica pgx Pool.
// The replica serves read transactions started with circulation.WithEventualConsistency.
func NewStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if primary == nil || replica == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

// NewStoreFromSQLXAndReplica creates a new Store using a primary and a replica sqlx.DB.
func NewStoreFromSQLXAndReplica(primary *sqlx.DB, replica *sqlx.DB, options ...Option) (Store, error) {
	if primary == nil || replica == nil {
		return Store{}, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapterWithReplica(primary, replica), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// WithinTx runs fn inside a read-write transaction on the primary database.
// The transaction commits if fn returns nil and rolls back otherwise.
func (s Store) WithinTx(ctx context.Context, fn circulation.TxFunc) error {
	return s.runTx(ctx, operationWriteTx, adapters.TxOptions{}, fn)
}

// WithinReadTx runs fn inside a read-only transaction.
// With circulation.WithEventualConsistency in ctx, a configured replica is used.
func (s Store) WithinReadTx(ctx context.Context, fn circulation.TxFunc) error {
	opts := adapters.TxOptions{
		ReadOnly:   true,
		UseReplica: circulation.GetConsistencyLevel(ctx) == circulation.EventualConsistency,
	}

	return s.runTx(ctx, operationReadTx, opts, fn)
}

// Ping checks the database connection.
func (s Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s Store) runTx(ctx context.Context, operation string, opts adapters.TxOptions, fn circulation.TxFunc) error {
	start := time.Now()
	tracer, ctx := s.startTxTracing(ctx, operation, circulation.GetConsistencyLevel(ctx))

	dbTx, beginErr := s.db.BeginTx(ctx, opts)
	if beginErr != nil {
		err := errors.Join(circulation.ErrBeginningTxFailed, classifyDriverError(beginErr), beginErr)
		s.logErrorWithContext(ctx, logMsgBeginTxFailed, beginErr, logAttrOperation, operation)
		s.recordErrorMetrics(ctx, operation, errorTypeBeginTx)
		tracer.finishError(errorTypeBeginTx, time.Since(start))

		return err
	}

	tx := &pgTx{store: s, db: dbTx}

	if fnErr := fn(ctx, tx); fnErr != nil {
		if rollbackErr := dbTx.Rollback(ctx); rollbackErr != nil {
			s.logWarnWithContext(ctx, logMsgRollbackTxFailed, logAttrError, rollbackErr.Error(), logAttrOperation, operation)
		}

		errorType := s.classifyTxError(ctx, operation, fnErr)
		s.logOperationWithContext(ctx, logMsgTxRolledBack, logAttrOperation, operation, logAttrError, fnErr.Error())
		s.recordTxDuration(ctx, operation, statusError, time.Since(start))
		tracer.finishError(errorType, time.Since(start))

		return fnErr
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		err := errors.Join(circulation.ErrCommittingTxFailed, classifyDriverError(commitErr), commitErr)
		s.logErrorWithContext(ctx, logMsgCommitTxFailed, commitErr, logAttrOperation, operation)
		errorType := s.classifyTxError(ctx, operation, err)
		s.recordTxDuration(ctx, operation, statusError, time.Since(start))
		tracer.finishError(errorType, time.Since(start))

		return err
	}

	duration := time.Since(start)
	s.logOperationWithContext(ctx, logMsgTxCommitted, logAttrOperation, operation, logAttrDurationMS, toMilliseconds(duration))
	s.recordTxDuration(ctx, operation, statusSuccess, duration)
	tracer.finishSuccess(duration)

	return nil
}

// classifyTxError records the error related metrics and returns the error type label.
func (s Store) classifyTxError(ctx context.Context, operation string, err error) string {
	switch {
	case errors.Is(err, circulation.ErrConcurrencyConflict):
		s.logOperationWithContext(ctx, logMsgConcurrencyConflict, logAttrOperation, operation)
		s.recordConcurrencyConflictMetrics(ctx, operation)
		return errorTypeConcurrency

	case errors.Is(err, circulation.ErrInventoryInvariantViolated):
		s.recordErrorMetrics(ctx, operation, errorTypeInvariantViolated)
		return errorTypeInvariantViolated

	default:
		return errorTypeWorkflow
	}
}
