package core

import (
	"time"
)

// RemovingBookFailedEventType is the event type identifier.
const RemovingBookFailedEventType = "RemovingBookFailed"

// RemovingBookFailed represents when removing a book was rejected by a business rule.
type RemovingBookFailed struct {
	BookID      BookIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRemovingBookFailed creates a new RemovingBookFailed event.
func BuildRemovingBookFailed(bookID BookIDString, failureInfo string, occurredAt time.Time) RemovingBookFailed {
	return RemovingBookFailed{
		BookID:      bookID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RemovingBookFailed) EventType() string {
	return RemovingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RemovingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e RemovingBookFailed) IsErrorEvent() bool {
	return true
}
