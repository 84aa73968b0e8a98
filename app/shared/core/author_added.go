package core

import (
	"time"
)

// AuthorAddedEventType is the event type identifier.
const AuthorAddedEventType = "AuthorAdded"

// AuthorAdded represents when an author was added to the catalog.
type AuthorAdded struct {
	AuthorID   AuthorIDString
	Name       string
	OccurredAt OccurredAt
}

// BuildAuthorAdded creates a new AuthorAdded event.
func BuildAuthorAdded(authorID AuthorIDString, name string, occurredAt time.Time) AuthorAdded {
	return AuthorAdded{
		AuthorID:   authorID,
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AuthorAdded) EventType() string {
	return AuthorAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AuthorAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e AuthorAdded) IsErrorEvent() bool {
	return false
}
