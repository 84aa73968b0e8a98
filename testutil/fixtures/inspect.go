package fixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ReadStore is the part of a circulation store the inspection helpers need.
type ReadStore interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

func CurrentBook(t testing.TB, ctx context.Context, store ReadStore, bookID uuid.UUID) circulation.Book {
	var book circulation.Book

	err := store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		book, err = tx.GetBook(ctx, bookID)

		return err
	})
	require.NoError(t, err, "error in reading the book")

	return book
}

func CurrentUser(t testing.TB, ctx context.Context, store ReadStore, userID uuid.UUID) circulation.LibraryUser {
	var user circulation.LibraryUser

	err := store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		user, err = tx.GetUser(ctx, userID)

		return err
	})
	require.NoError(t, err, "error in reading the user")

	return user
}

func CurrentLoan(t testing.TB, ctx context.Context, store ReadStore, loanID uuid.UUID) circulation.LoanDetails {
	var loan circulation.LoanDetails

	err := store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		loan, err = tx.GetLoanDetails(ctx, loanID)

		return err
	})
	require.NoError(t, err, "error in reading the loan")

	return loan
}

func LoanExists(t testing.TB, ctx context.Context, store ReadStore, loanID uuid.UUID) bool {
	err := store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		_, err := tx.GetLoanDetails(ctx, loanID)
		return err
	})
	if errors.Is(err, circulation.ErrLoanNotFound) {
		return false
	}
	require.NoError(t, err, "error in reading the loan")

	return true
}

func PaymentsOf(t testing.TB, ctx context.Context, store ReadStore, userID uuid.UUID) []circulation.Payment {
	var payments []circulation.Payment

	err := store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		payments, err = tx.ListPaymentsForUser(ctx, userID)

		return err
	})
	require.NoError(t, err, "error in reading the payments")

	return payments
}

// AppendedEvents returns the audit events of the given types in append order. No types means all events.
func AppendedEvents(t testing.TB, ctx context.Context, store ReadStore, eventTypes ...string) circulation.StorableEvents {
	var events circulation.StorableEvents

	err := store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		events, err = tx.QueryEvents(ctx, eventTypes...)

		return err
	})
	require.NoError(t, err, "error in reading the events")

	return events
}

// AppendedEventTypes returns the types of all audit events in append order.
func AppendedEventTypes(t testing.TB, ctx context.Context, store ReadStore) []string {
	events := AppendedEvents(t, ctx, store)

	eventTypes := make([]string, 0, len(events))
	for _, event := range events {
		eventTypes = append(eventTypes, event.EventType)
	}

	return eventTypes
}
