package core

import (
	"time"
)

// AuthorRemovedEventType is the event type identifier.
const AuthorRemovedEventType = "AuthorRemoved"

// AuthorRemoved represents when an author without books was removed.
type AuthorRemoved struct {
	AuthorID   AuthorIDString
	Name       string
	OccurredAt OccurredAt
}

// BuildAuthorRemoved creates a new AuthorRemoved event.
func BuildAuthorRemoved(authorID AuthorIDString, name string, occurredAt time.Time) AuthorRemoved {
	return AuthorRemoved{
		AuthorID:   authorID,
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AuthorRemoved) EventType() string {
	return AuthorRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AuthorRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e AuthorRemoved) IsErrorEvent() bool {
	return false
}
