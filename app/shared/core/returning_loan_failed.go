package core

import (
	"time"

	"github.com/google/uuid"
)

// ReturningLoanFailedEventType is the event type identifier.
const ReturningLoanFailedEventType = "ReturningLoanFailed"

// ReturningLoanFailed represents when returning a loan was rejected by a business rule.
type ReturningLoanFailed struct {
	LoanID      LoanIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildReturningLoanFailed creates a new ReturningLoanFailed event.
func BuildReturningLoanFailed(loanID uuid.UUID, failureInfo string, occurredAt time.Time) ReturningLoanFailed {
	return ReturningLoanFailed{
		LoanID:      loanID.String(),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReturningLoanFailed) EventType() string {
	return ReturningLoanFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturningLoanFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e ReturningLoanFailed) IsErrorEvent() bool {
	return true
}
