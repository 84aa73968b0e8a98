package core

import (
	"time"
)

// UserRemovedEventType is the event type identifier.
const UserRemovedEventType = "UserRemoved"

// UserRemoved represents when a library user was removed together with their loan history.
type UserRemoved struct {
	UserID     UserIDString
	MemberID   string
	OccurredAt OccurredAt
}

// BuildUserRemoved creates a new UserRemoved event.
func BuildUserRemoved(userID UserIDString, memberID string, occurredAt time.Time) UserRemoved {
	return UserRemoved{
		UserID:     userID,
		MemberID:   memberID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e UserRemoved) EventType() string {
	return UserRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRemoved) IsErrorEvent() bool {
	return false
}
