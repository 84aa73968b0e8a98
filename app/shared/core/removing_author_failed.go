package core

import (
	"time"
)

// RemovingAuthorFailedEventType is the event type identifier.
const RemovingAuthorFailedEventType = "RemovingAuthorFailed"

// RemovingAuthorFailed represents when removing an author was rejected because books still reference it.
type RemovingAuthorFailed struct {
	AuthorID    AuthorIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRemovingAuthorFailed creates a new RemovingAuthorFailed event.
func BuildRemovingAuthorFailed(authorID AuthorIDString, failureInfo string, occurredAt time.Time) RemovingAuthorFailed {
	return RemovingAuthorFailed{
		AuthorID:    authorID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RemovingAuthorFailed) EventType() string {
	return RemovingAuthorFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RemovingAuthorFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e RemovingAuthorFailed) IsErrorEvent() bool {
	return true
}
