package issueloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/issueloan"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_Decide_Success_WhenUserActiveAndCopyAvailable(t *testing.T) {
	// arrange
	command := buildCommand()
	s := issueloan.State{UserIsActive: true, CopiesAvailable: 2}

	// act
	result := issueloan.Decide(s, command)

	// assert
	assert.True(t, result.IsSuccess())
	assert.NoError(t, result.HasError())

	event, ok := result.Event.(core.LoanIssued)
	assert.True(t, ok, "event should be LoanIssued")
	assert.Equal(t, command.LoanID.String(), event.LoanID)
	assert.Equal(t, "2024-01-01", event.DueDate)
	assert.Equal(t, 1, event.CopiesAvailable)
}

func Test_Decide_Error_WhenUserInactive(t *testing.T) {
	// arrange
	command := buildCommand()
	s := issueloan.State{UserIsActive: false, CopiesAvailable: 2}

	// act
	result := issueloan.Decide(s, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrUserInactive)
	assert.True(t, result.Event.IsErrorEvent())

	event, ok := result.Event.(core.IssuingLoanFailed)
	assert.True(t, ok, "event should be IssuingLoanFailed")
	assert.Equal(t, "user is not active", event.FailureInfo)
}

func Test_Decide_Error_WhenNoCopyAvailable(t *testing.T) {
	// arrange
	command := buildCommand()
	s := issueloan.State{UserIsActive: true, CopiesAvailable: 0}

	// act
	result := issueloan.Decide(s, command)

	// assert
	assert.ErrorIs(t, result.HasError(), circulation.ErrOutOfStock)

	event, ok := result.Event.(core.IssuingLoanFailed)
	assert.True(t, ok, "event should be IssuingLoanFailed")
	assert.Equal(t, "no copies available", event.FailureInfo)
}

func Test_Decide_UserCheckComesFirst(t *testing.T) {
	// arrange
	command := buildCommand()
	s := issueloan.State{UserIsActive: false, CopiesAvailable: 0}

	// act
	result := issueloan.Decide(s, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrUserInactive)
	assert.NotErrorIs(t, result.HasError(), circulation.ErrOutOfStock)
}

func buildCommand() issueloan.Command {
	return issueloan.BuildCommand(
		uuid.New(),
		uuid.New(),
		uuid.New(),
		time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
		nil,
		time.Date(2023, 12, 15, 10, 0, 0, 0, time.UTC),
	)
}
