package core

import (
	"time"
)

// DeletingLoanFailedEventType is the event type identifier.
const DeletingLoanFailedEventType = "DeletingLoanFailed"

// DeletingLoanFailed represents when deleting a loan was rejected because it is still active.
type DeletingLoanFailed struct {
	LoanID      LoanIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildDeletingLoanFailed creates a new DeletingLoanFailed event.
func BuildDeletingLoanFailed(loanID LoanIDString, failureInfo string, occurredAt time.Time) DeletingLoanFailed {
	return DeletingLoanFailed{
		LoanID:      loanID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e DeletingLoanFailed) EventType() string {
	return DeletingLoanFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e DeletingLoanFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e DeletingLoanFailed) IsErrorEvent() bool {
	return true
}
