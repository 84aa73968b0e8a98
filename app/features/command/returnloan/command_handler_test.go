package returnloan_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_LateReturn_CreditsFeeAndReleasesCopy(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := returnloan.NewCommandHandler(store, core.DefaultFeePerDay)

	// arrange
	book := GivenBook(t, ctx, store, 2)
	user := GivenActiveUser(t, ctx, store)
	loan := GivenActiveLoan(t, ctx, store, book.ID, user.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(loan.ID, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC))

	// act
	returned, result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, circulation.LoanReturned, returned.Status())
	assert.True(t, returned.LateFee.Equal(decimal.NewFromInt(15)), "late fee should be 3 x 5")
	assert.NotNil(t, returned.ReturnDate)
	assert.Equal(t, book.Title, returned.BookTitle)
	assert.True(t, CurrentUser(t, ctx, store, user.ID).OutstandingBalance.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 2, CurrentBook(t, ctx, store, book.ID).CopiesAvailable)
	assert.Equal(
		t,
		[]string{core.LoanReturnedEventType, core.LateFeeAssessedEventType},
		AppendedEventTypes(t, ctx, store),
	)
}

func Test_CommandHandler_Handle_OnTimeReturn_LeavesBalanceUntouched(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := returnloan.NewCommandHandler(store, core.DefaultFeePerDay)

	// arrange
	book := GivenBook(t, ctx, store, 1)
	user := GivenActiveUser(t, ctx, store)
	loan := GivenActiveLoan(t, ctx, store, book.ID, user.ID, time.Now().AddDate(0, 0, 7))
	command := returnloan.BuildCommand(loan.ID, time.Now())

	// act
	returned, _, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.True(t, returned.LateFee.IsZero())
	assert.True(t, CurrentUser(t, ctx, store, user.ID).OutstandingBalance.IsZero())
	assert.Equal(t, 1, CurrentBook(t, ctx, store, book.ID).CopiesAvailable)
	assert.Equal(t, []string{core.LoanReturnedEventType}, AppendedEventTypes(t, ctx, store))
}

func Test_CommandHandler_Handle_UsesConfiguredFeePerDay(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := returnloan.NewCommandHandler(store, decimal.RequireFromString("2.50"))

	// arrange
	book := GivenBook(t, ctx, store, 1)
	user := GivenActiveUser(t, ctx, store)
	loan := GivenActiveLoan(t, ctx, store, book.ID, user.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(loan.ID, time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC))

	// act
	returned, _, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.True(t, returned.LateFee.Equal(decimal.NewFromInt(5)), "late fee should be 2 x 2.50")
}

func Test_CommandHandler_Handle_Rejected_WhenAlreadyReturned(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := returnloan.NewCommandHandler(store, core.DefaultFeePerDay)

	// arrange
	book := GivenBook(t, ctx, store, 1)
	user := GivenActiveUser(t, ctx, store)
	loan := GivenActiveLoan(t, ctx, store, book.ID, user.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(loan.ID, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC))
	_, _, err := handler.Handle(ctx, command)
	require.NoError(t, err, "error in arranging test data")

	// act
	_, _, err = handler.Handle(ctx, returnloan.BuildCommand(loan.ID, time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyReturned)
	assert.True(t, CurrentLoan(t, ctx, store, loan.ID).LateFee.Equal(decimal.NewFromInt(15)), "late fee must not change")
	assert.True(t, CurrentUser(t, ctx, store, user.ID).OutstandingBalance.Equal(decimal.NewFromInt(15)), "balance must not change")
	assert.Equal(t, 1, CurrentBook(t, ctx, store, book.ID).CopiesAvailable, "copies must not change")
	assert.Len(t, AppendedEvents(t, ctx, store, core.ReturningLoanFailedEventType), 1)
}

func Test_CommandHandler_Handle_Rejected_WhenLoanUnknown(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := returnloan.NewCommandHandler(store, core.DefaultFeePerDay)

	// act
	_, _, err := handler.Handle(ctx, returnloan.BuildCommand(GivenUniqueID(t), time.Now()))

	// assert
	assert.ErrorIs(t, err, circulation.ErrLoanNotFound)
	assert.True(t, shell.IsRejectionError(err))
}

func Test_CommandHandler_Handle_InventoryInvariantViolation_RollsBack(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := returnloan.NewCommandHandler(store, core.DefaultFeePerDay)

	// arrange
	book := GivenBook(t, ctx, store, 1)
	user := GivenActiveUser(t, ctx, store)
	loan := givenLoanWithoutReservation(t, ctx, store, book.ID, user.ID)

	// act
	_, _, err := handler.Handle(ctx, returnloan.BuildCommand(loan.ID, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)))

	// assert
	assert.ErrorIs(t, err, circulation.ErrInventoryInvariantViolated)
	assert.False(t, shell.IsRejectionError(err))
	assert.Equal(t, circulation.LoanActive, CurrentLoan(t, ctx, store, loan.ID).Status(), "the loan must stay active")
	assert.True(t, CurrentUser(t, ctx, store, user.ID).OutstandingBalance.IsZero(), "the fee must not be credited")
	assert.Equal(t, 1, CurrentBook(t, ctx, store, book.ID).CopiesAvailable)
	assert.Empty(t, AppendedEventTypes(t, ctx, store))
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	return store
}

// givenLoanWithoutReservation inserts a loan behind the inventory ledger's back.
func givenLoanWithoutReservation(
	t *testing.T,
	ctx context.Context,
	store *memoryengine.Store,
	bookID, userID uuid.UUID,
) circulation.Loan {

	t.Helper()

	var loan circulation.Loan

	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		loan, err = tx.InsertLoan(ctx, circulation.Loan{
			BookID:  bookID,
			UserID:  userID,
			DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})

		return err
	})
	require.NoError(t, err, "error in arranging test data")

	return loan
}
