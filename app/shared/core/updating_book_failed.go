package core

import (
	"time"
)

// UpdatingBookFailedEventType is the event type identifier.
const UpdatingBookFailedEventType = "UpdatingBookFailed"

// UpdatingBookFailed represents when reducing the copies of a book was rejected
// because more copies are on loan than the new total allows.
type UpdatingBookFailed struct {
	BookID      BookIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildUpdatingBookFailed creates a new UpdatingBookFailed event.
func BuildUpdatingBookFailed(bookID BookIDString, failureInfo string, occurredAt time.Time) UpdatingBookFailed {
	return UpdatingBookFailed{
		BookID:      bookID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e UpdatingBookFailed) EventType() string {
	return UpdatingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e UpdatingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e UpdatingBookFailed) IsErrorEvent() bool {
	return true
}
