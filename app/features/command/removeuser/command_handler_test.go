package removeuser_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removeuser"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success_DeletesUserAndPayments(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removeuser.NewCommandHandler(store)

	// arrange
	user := GivenActiveUser(t, ctx, store)
	GivenPendingPayment(t, ctx, store, user.ID, decimal.NewFromInt(10))

	// act
	_, _, err := handler.Handle(ctx, removeuser.BuildCommand(user.ID, time.Now()))

	// assert
	require.NoError(t, err)
	assert.True(t, userIsGone(t, store, user), "the user must be deleted")
	assert.Empty(t, PaymentsOf(t, ctx, store, user.ID), "payments are deleted with the user")

	events := AppendedEvents(t, ctx, store, core.UserRemovedEventType)
	require.Len(t, events, 1)
	assert.Contains(t, string(events[0].PayloadJSON), user.MemberID)
}

func Test_CommandHandler_Handle_Rejected_WhenUserHasActiveLoans(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removeuser.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, ctx, store, 1)
	user := GivenActiveUser(t, ctx, store)
	GivenActiveLoan(t, ctx, store, book.ID, user.ID, time.Now().AddDate(0, 0, 7))

	// act
	_, _, err := handler.Handle(ctx, removeuser.BuildCommand(user.ID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrUserHasActiveLoans)
	assert.Equal(t, user.ID, CurrentUser(t, ctx, store, user.ID).ID, "the user must still exist")
	assert.Equal(t, []string{core.RemovingUserFailedEventType}, AppendedEventTypes(t, ctx, store))
}

func Test_CommandHandler_Handle_Rejected_WhenUserUnknown(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removeuser.NewCommandHandler(store)

	// act
	_, _, err := handler.Handle(ctx, removeuser.BuildCommand(GivenUniqueID(t), time.Now()))

	// assert
	assert.ErrorIs(t, err, circulation.ErrUserNotFound)
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	return store
}

func userIsGone(t *testing.T, store *memoryengine.Store, user circulation.LibraryUser) bool {
	t.Helper()

	err := store.WithinReadTx(t.Context(), func(ctx context.Context, tx circulation.Tx) error {
		_, err := tx.GetUser(ctx, user.ID)
		return err
	})

	return errors.Is(err, circulation.ErrUserNotFound)
}
