package core

import (
	"time"
)

// UserUpdatedEventType is the event type identifier.
const UserUpdatedEventType = "UserUpdated"

// UserUpdated represents a change of the contact data or the active flag of a library user.
type UserUpdated struct {
	UserID     UserIDString
	IsActive   bool
	OccurredAt OccurredAt
}

// BuildUserUpdated creates a new UserUpdated event.
func BuildUserUpdated(userID UserIDString, isActive bool, occurredAt time.Time) UserUpdated {
	return UserUpdated{
		UserID:     userID,
		IsActive:   isActive,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e UserUpdated) EventType() string {
	return UserUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserUpdated) IsErrorEvent() bool {
	return false
}
