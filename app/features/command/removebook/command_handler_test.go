package removebook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success_DeletesBookAndReturnedLoans(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removebook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, ctx, store, 1)
	user := GivenActiveUser(t, ctx, store)
	loan := GivenActiveLoan(t, ctx, store, book.ID, user.ID, time.Now().AddDate(0, 0, 7))
	_, _, err := returnloan.NewCommandHandler(store, core.DefaultFeePerDay).Handle(ctx, returnloan.BuildCommand(loan.ID, time.Now()))
	require.NoError(t, err, "error in arranging test data")

	// act
	_, _, err = handler.Handle(ctx, removebook.BuildCommand(book.ID, time.Now()))

	// assert
	require.NoError(t, err)
	assert.False(t, LoanExists(t, ctx, store, loan.ID), "returned loans are deleted with the book")

	events := AppendedEvents(t, ctx, store, core.BookRemovedEventType)
	require.Len(t, events, 1)
	assert.Contains(t, string(events[0].PayloadJSON), book.Title)
}

func Test_CommandHandler_Handle_Rejected_WhenBookHasActiveLoans(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removebook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, ctx, store, 2)
	user := GivenActiveUser(t, ctx, store)
	GivenActiveLoan(t, ctx, store, book.ID, user.ID, time.Now().AddDate(0, 0, 7))

	// act
	_, _, err := handler.Handle(ctx, removebook.BuildCommand(book.ID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrBookHasActiveLoans)
	assert.Equal(t, book.ID, CurrentBook(t, ctx, store, book.ID).ID, "the book must still exist")
	assert.Equal(t, 1, CurrentBook(t, ctx, store, book.ID).CopiesAvailable)
	assert.Equal(t, []string{core.RemovingBookFailedEventType}, AppendedEventTypes(t, ctx, store))
}

func Test_CommandHandler_Handle_Rejected_WhenBookUnknown(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removebook.NewCommandHandler(store)

	// act
	_, _, err := handler.Handle(ctx, removebook.BuildCommand(GivenUniqueID(t), time.Now()))

	// assert
	assert.ErrorIs(t, err, circulation.ErrBookNotFound)
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	return store
}
