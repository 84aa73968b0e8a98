package core

import (
	"time"

	"github.com/google/uuid"
)

// IssuingLoanFailedEventType is the event type identifier.
const IssuingLoanFailedEventType = "IssuingLoanFailed"

// IssuingLoanFailed represents when issuing a loan was rejected by a business rule.
type IssuingLoanFailed struct {
	BookID      BookIDString
	UserID      UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildIssuingLoanFailed creates a new IssuingLoanFailed event.
func BuildIssuingLoanFailed(bookID uuid.UUID, userID uuid.UUID, failureInfo string, occurredAt time.Time) IssuingLoanFailed {
	return IssuingLoanFailed{
		BookID:      bookID.String(),
		UserID:      userID.String(),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e IssuingLoanFailed) EventType() string {
	return IssuingLoanFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e IssuingLoanFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e IssuingLoanFailed) IsErrorEvent() bool {
	return true
}
