package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_StorableEventFrom_And_DomainEventFrom_KeepTheLateFee(t *testing.T) {
	// arrange
	loanID, bookID, userID := uuid.New(), uuid.New(), uuid.New()
	returnedAt := time.Date(2024, 1, 4, 10, 30, 0, 123456789, time.UTC)
	event := core.BuildLoanReturned(loanID, bookID, userID, 3, decimal.NewFromInt(15), returnedAt)
	metadata := shell.BuildEventMetadata(uuid.New(), loanID, uuid.New())

	// act
	storableEvent, err := shell.StorableEventFrom(event, metadata)
	require.NoError(t, err, "error in arranging test data")

	domainEvent, err := shell.DomainEventFrom(storableEvent)
	require.NoError(t, err)

	gotMetadata, err := shell.EventMetadataFrom(storableEvent)
	require.NoError(t, err)

	// assert
	assert.Equal(t, core.LoanReturnedEventType, storableEvent.EventType)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"LateFee":"15.00"`)

	returned, ok := domainEvent.(core.LoanReturned)
	require.True(t, ok, "should map to a LoanReturned event")
	assert.Equal(t, "15.00", returned.LateFee)
	assert.Equal(t, 3, returned.DaysLate)
	assert.True(t, returnedAt.Truncate(time.Microsecond).Equal(returned.OccurredAt))
	assert.Equal(t, metadata, gotMetadata)
}

func Test_DomainEventsFrom_MapsErrorEvents(t *testing.T) {
	// arrange
	failed := core.BuildIssuingLoanFailed(uuid.New(), uuid.New(), "no copies available", time.Now())
	storableEvent, err := shell.StorableEventFrom(failed, shell.BuildEventMetadata(uuid.New(), uuid.New(), uuid.New()))
	require.NoError(t, err, "error in arranging test data")

	// act
	domainEvents, err := shell.DomainEventsFrom(circulation.StorableEvents{storableEvent})

	// assert
	require.NoError(t, err)
	require.Len(t, domainEvents, 1)
	assert.True(t, domainEvents[0].IsErrorEvent())
	assert.Equal(t, failed.FailureInfo, domainEvents[0].(core.IssuingLoanFailed).FailureInfo)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := circulation.BuildStorableEventWithEmptyMetadata("SomethingElse", time.Now(), []byte(`{}`))
	require.NoError(t, err, "error in arranging test data")

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
}

func Test_IsRejectionError(t *testing.T) {
	assert.True(t, shell.IsRejectionError(core.ErrUserInactive))
	assert.True(t, shell.IsRejectionError(circulation.ErrOutOfStock))
	assert.True(t, shell.IsRejectionError(circulation.ErrLoanNotFound))
	assert.False(t, shell.IsRejectionError(circulation.ErrInventoryInvariantViolated))
	assert.False(t, shell.IsRejectionError(circulation.ErrConcurrencyConflict))
}
