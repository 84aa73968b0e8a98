package returnloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_Decide_Success_ChargesWholeDaysLate(t *testing.T) {
	// arrange
	s := givenActiveLoanState(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(uuid.New(), time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC))

	// act
	result := returnloan.Decide(s, command, core.DefaultFeePerDay)

	// assert
	assert.True(t, result.IsSuccess())

	event, ok := result.Event.(core.LoanReturned)
	assert.True(t, ok, "event should be LoanReturned")
	assert.Equal(t, 3, event.DaysLate)
	assert.Equal(t, "15.00", event.LateFee)
	assert.Equal(t, s.BookID.String(), event.BookID)
	assert.Equal(t, s.UserID.String(), event.UserID)
}

func Test_Decide_Success_NoFeeWhenReturnedOnTime(t *testing.T) {
	// arrange
	s := givenActiveLoanState(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(uuid.New(), time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC))

	// act
	result := returnloan.Decide(s, command, core.DefaultFeePerDay)

	// assert
	event, ok := result.Event.(core.LoanReturned)
	assert.True(t, ok, "event should be LoanReturned")
	assert.Equal(t, 0, event.DaysLate)
	assert.Equal(t, "0.00", event.LateFee)
}

func Test_Decide_Error_WhenLoanNotFound(t *testing.T) {
	// arrange
	command := returnloan.BuildCommand(uuid.New(), time.Now())

	// act
	result := returnloan.Decide(returnloan.State{}, command, core.DefaultFeePerDay)

	// assert
	assert.ErrorIs(t, result.HasError(), circulation.ErrLoanNotFound)
	assert.True(t, result.Event.IsErrorEvent())
}

func Test_Decide_Error_WhenAlreadyReturned(t *testing.T) {
	// arrange
	s := givenActiveLoanState(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.IsReturned = true
	command := returnloan.BuildCommand(uuid.New(), time.Now())

	// act
	result := returnloan.Decide(s, command, core.DefaultFeePerDay)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrAlreadyReturned)

	event, ok := result.Event.(core.ReturningLoanFailed)
	assert.True(t, ok, "event should be ReturningLoanFailed")
	assert.Equal(t, "loan was already returned", event.FailureInfo)
}

func givenActiveLoanState(dueDate time.Time) returnloan.State {
	return returnloan.StateFrom(circulation.Loan{
		ID:      uuid.New(),
		BookID:  uuid.New(),
		UserID:  uuid.New(),
		DueDate: dueDate,
	})
}
