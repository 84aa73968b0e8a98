package fixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store is the part of a circulation store the fixtures need.
type Store interface {
	WithinTx(ctx context.Context, fn circulation.TxFunc) error
}

var sequence atomic.Int64

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

func GivenAuthor(t testing.TB, ctx context.Context, store Store) circulation.Author {
	var author circulation.Author

	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		author, err = tx.InsertAuthor(ctx, circulation.Author{
			Name: fmt.Sprintf("Gabriel García Márquez %06d", sequence.Add(1)),
		})

		return err
	})
	require.NoError(t, err, "error in arranging test data")

	return author
}

func GivenBook(t testing.TB, ctx context.Context, store Store, copies int) circulation.Book {
	author := GivenAuthor(t, ctx, store)

	var book circulation.Book

	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		book, err = tx.InsertBook(ctx, circulation.Book{
			Title:           fmt.Sprintf("Cien años de soledad %06d", sequence.Add(1)),
			AuthorID:        author.ID,
			CopiesTotal:     copies,
			CopiesAvailable: copies,
		})

		return err
	})
	require.NoError(t, err, "error in arranging test data")

	return book
}

func GivenActiveUser(t testing.TB, ctx context.Context, store Store) circulation.LibraryUser {
	return givenUser(t, ctx, store, true)
}

func GivenInactiveUser(t testing.TB, ctx context.Context, store Store) circulation.LibraryUser {
	return givenUser(t, ctx, store, false)
}

func givenUser(t testing.TB, ctx context.Context, store Store, active bool) circulation.LibraryUser {
	n := sequence.Add(1)

	var user circulation.LibraryUser

	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		user, err = tx.InsertUser(ctx, circulation.LibraryUser{
			Name:     fmt.Sprintf("Ana Torres %06d", n),
			Email:    fmt.Sprintf("ana.torres.%06d@example.com", n),
			IsActive: active,
		})

		return err
	})
	require.NoError(t, err, "error in arranging test data")

	return user
}

// GivenActiveLoan reserves a copy and inserts the loan in one transaction, like issuing does.
func GivenActiveLoan(t testing.TB, ctx context.Context, store Store, bookID, userID uuid.UUID, dueDate time.Time) circulation.Loan {
	var loan circulation.Loan

	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		if _, err := tx.ReserveCopy(ctx, bookID); err != nil {
			return err
		}

		var err error
		loan, err = tx.InsertLoan(ctx, circulation.Loan{
			BookID:  bookID,
			UserID:  userID,
			DueDate: circulation.TruncateToDate(dueDate),
		})

		return err
	})
	require.NoError(t, err, "error in arranging test data")

	return loan
}

func GivenCreditedBalance(t testing.TB, ctx context.Context, store Store, userID uuid.UUID, amount decimal.Decimal) {
	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		_, err := tx.CreditBalance(ctx, userID, amount)
		return err
	})
	require.NoError(t, err, "error in arranging test data")
}

func GivenPendingPayment(t testing.TB, ctx context.Context, store Store, userID uuid.UUID, amount decimal.Decimal) circulation.Payment {
	var payment circulation.Payment

	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		payment, err = tx.InsertPayment(ctx, circulation.Payment{
			UserID:            userID,
			Amount:            amount,
			Description:       "Pago de multa de biblioteca",
			ProviderSessionID: fmt.Sprintf("cs_test_%06d", sequence.Add(1)),
			Status:            circulation.PaymentPending,
		})

		return err
	})
	require.NoError(t, err, "error in arranging test data")

	return payment
}
