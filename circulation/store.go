package circulation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryLedger tracks total vs. available copies per book. 0 <= available <= total holds at all times.
type InventoryLedger interface {
	// ReserveCopy decrements copies_available with a single conditional update.
	// Returns ErrOutOfStock if no copy is available or the book does not exist.
	ReserveCopy(ctx context.Context, bookID uuid.UUID) (Book, error)

	// ReleaseCopy increments copies_available with a single conditional update.
	// Returns ErrInventoryInvariantViolated if all copies are already available.
	ReleaseCopy(ctx context.Context, bookID uuid.UUID) (Book, error)
}

// BalanceLedger keeps the outstanding balance per user. Both operations are atomic increments
// and return ErrNegativeAmount for amounts below zero.
type BalanceLedger interface {
	CreditBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

// LoanRepository gives row access to loans.
type LoanRepository interface {
	InsertLoan(ctx context.Context, loan Loan) (Loan, error)

	// LockLoan reads the loan and holds a row lock until the transaction ends.
	LockLoan(ctx context.Context, loanID uuid.UUID) (Loan, error)

	// MarkLoanReturned sets the loan returned only if it is still active.
	// Returns ErrConcurrencyConflict if another transaction returned it first.
	MarkLoanReturned(ctx context.Context, loanID uuid.UUID, returnDate time.Time, lateFee decimal.Decimal) (Loan, error)

	DeleteLoan(ctx context.Context, loanID uuid.UUID) error
	CountActiveLoansForBook(ctx context.Context, bookID uuid.UUID) (int, error)
	CountActiveLoansForUser(ctx context.Context, userID uuid.UUID) (int, error)
	GetLoanDetails(ctx context.Context, loanID uuid.UUID) (LoanDetails, error)
	ListLoans(ctx context.Context, filter LoanFilter) ([]LoanDetails, error)
}

// PaymentRepository gives row access to payments.
type PaymentRepository interface {
	InsertPayment(ctx context.Context, payment Payment) (Payment, error)

	// LockPaymentBySessionID reads the payment of a provider session and holds a row lock until the transaction ends.
	LockPaymentBySessionID(ctx context.Context, sessionID string) (Payment, error)

	MarkPaymentCompleted(ctx context.Context, paymentID uuid.UUID, paymentIntent *string, paidAt time.Time) (Payment, error)
	MarkPaymentFailed(ctx context.Context, paymentID uuid.UUID) (Payment, error)
	ListPaymentsForUser(ctx context.Context, userID uuid.UUID) ([]Payment, error)
}

// CatalogRepository gives row access to authors and books.
type CatalogRepository interface {
	InsertAuthor(ctx context.Context, author Author) (Author, error)
	UpdateAuthor(ctx context.Context, author Author) (Author, error)
	GetAuthor(ctx context.Context, authorID uuid.UUID) (Author, error)
	LockAuthor(ctx context.Context, authorID uuid.UUID) (Author, error)
	ListAuthors(ctx context.Context, search string) ([]Author, error)
	DeleteAuthor(ctx context.Context, authorID uuid.UUID) error
	CountBooksForAuthor(ctx context.Context, authorID uuid.UUID) (int, error)

	InsertBook(ctx context.Context, book Book) (Book, error)
	UpdateBook(ctx context.Context, book Book) (Book, error)
	GetBook(ctx context.Context, bookID uuid.UUID) (Book, error)
	LockBook(ctx context.Context, bookID uuid.UUID) (Book, error)
	ListBooks(ctx context.Context, search string) ([]Book, error)
	DeleteBook(ctx context.Context, bookID uuid.UUID) error
}

// UserRepository gives row access to library users.
type UserRepository interface {
	// InsertUser stores the user and returns it with the generated member id.
	InsertUser(ctx context.Context, user LibraryUser) (LibraryUser, error)
	UpdateUser(ctx context.Context, user LibraryUser) (LibraryUser, error)
	GetUser(ctx context.Context, userID uuid.UUID) (LibraryUser, error)

	// LockUserForShare reads the user and blocks concurrent updates and deletes until the transaction ends.
	LockUserForShare(ctx context.Context, userID uuid.UUID) (LibraryUser, error)
	LockUserForUpdate(ctx context.Context, userID uuid.UUID) (LibraryUser, error)

	ListUsers(ctx context.Context, search string) ([]LibraryUser, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// EventAppender appends audit events in the same transaction as the state change.
type EventAppender interface {
	AppendEvents(ctx context.Context, events ...StorableEvent) error

	// QueryEvents returns all events of the given types in append order. No types means all events.
	QueryEvents(ctx context.Context, eventTypes ...string) (StorableEvents, error)
}

// Tx groups everything a workflow may touch inside one store transaction.
type Tx interface {
	InventoryLedger
	BalanceLedger
	LoanRepository
	PaymentRepository
	CatalogRepository
	UserRepository
	EventAppender
}

// TxFunc runs inside a transaction. Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, tx Tx) error

// Store runs workflows in transactions. It is implemented by postgresengine.Store and memoryengine.Store.
type Store interface {
	// WithinTx runs fn in a read-write transaction that commits only if fn returns nil.
	WithinTx(ctx context.Context, fn TxFunc) error

	// WithinReadTx runs fn in a read-only transaction. It honors the consistency level in ctx.
	WithinReadTx(ctx context.Context, fn TxFunc) error

	Ping(ctx context.Context) error
}
