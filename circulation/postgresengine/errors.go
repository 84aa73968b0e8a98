package postgresengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateUniqueViolation      = "23505"
	sqlStateForeignKeyViolation  = "23503"
	sqlStateCheckViolation       = "23514"
)

// classifyDriverError maps the SQLSTATE of a pgx or lib/pq error to a circulation sentinel.
// It returns nil for errors without a known SQLSTATE.
func classifyDriverError(err error) error {
	switch sqlStateOf(err) {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected:
		return circulation.ErrConcurrencyConflict
	case sqlStateUniqueViolation:
		return circulation.ErrUniqueViolation
	case sqlStateForeignKeyViolation:
		return circulation.ErrForeignKeyViolation
	case sqlStateCheckViolation:
		return circulation.ErrCheckViolation
	default:
		return nil
	}
}

func sqlStateOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}
