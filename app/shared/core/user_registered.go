package core

import (
	"time"
)

// UserRegisteredEventType is the event type identifier.
const UserRegisteredEventType = "UserRegistered"

// UserRegistered represents when a library user was registered and received a member id.
type UserRegistered struct {
	UserID     UserIDString
	MemberID   string
	Name       string
	OccurredAt OccurredAt
}

// BuildUserRegistered creates a new UserRegistered event.
func BuildUserRegistered(userID UserIDString, memberID string, name string, occurredAt time.Time) UserRegistered {
	return UserRegistered{
		UserID:     userID,
		MemberID:   memberID,
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e UserRegistered) EventType() string {
	return UserRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRegistered) IsErrorEvent() bool {
	return false
}
