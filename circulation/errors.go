package circulation

import "errors"

// Infrastructure errors returned by store implementations.
var (
	ErrNilDatabaseConnection     = errors.New("database connection must not be nil")
	ErrEmptyEventsTableName      = errors.New("empty events table name supplied")
	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingFailed            = errors.New("querying the database failed")
	ErrExecutingFailed           = errors.New("executing the statement failed")
	ErrScanningDBRowFailed       = errors.New("scanning db row failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrBeginningTxFailed         = errors.New("beginning the transaction failed")
	ErrCommittingTxFailed        = errors.New("committing the transaction failed")
	ErrConcurrencyConflict       = errors.New("concurrency conflict, the transaction must be retried")
	ErrUniqueViolation           = errors.New("unique constraint violated")
	ErrForeignKeyViolation       = errors.New("referenced row does not exist")
	ErrCheckViolation            = errors.New("check constraint violated")
)

// ErrInventoryInvariantViolated signals that a copy was released for a book which already has all copies available.
// It is a consistency failure and must never be clamped away.
var ErrInventoryInvariantViolated = errors.New("inventory invariant violated: copies available would exceed copies total")

// ErrNegativeAmount is returned by CreditBalance and DebitBalance for amounts below zero.
var ErrNegativeAmount = errors.New("balance movement amount must not be negative")

// ErrOutOfStock is returned by ReserveCopy when no copy of the book is available.
var ErrOutOfStock = errors.New("no copies available")

// Lookup errors.
var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrLoanNotFound    = errors.New("loan not found")
	ErrPaymentNotFound = errors.New("payment not found")
)
