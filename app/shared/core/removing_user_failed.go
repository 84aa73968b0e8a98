package core

import (
	"time"
)

// RemovingUserFailedEventType is the event type identifier.
const RemovingUserFailedEventType = "RemovingUserFailed"

// RemovingUserFailed represents when removing a library user was rejected by a business rule.
type RemovingUserFailed struct {
	UserID      UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildRemovingUserFailed creates a new RemovingUserFailed event.
func BuildRemovingUserFailed(userID UserIDString, failureInfo string, occurredAt time.Time) RemovingUserFailed {
	return RemovingUserFailed{
		UserID:      userID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RemovingUserFailed) EventType() string {
	return RemovingUserFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RemovingUserFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e RemovingUserFailed) IsErrorEvent() bool {
	return true
}
