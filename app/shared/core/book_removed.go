package core

import (
	"time"
)

// BookRemovedEventType is the event type identifier.
const BookRemovedEventType = "BookRemoved"

// BookRemoved represents when a book was removed from the catalog.
type BookRemoved struct {
	BookID     BookIDString
	Title      string
	OccurredAt OccurredAt
}

// BuildBookRemoved creates a new BookRemoved event.
func BuildBookRemoved(bookID BookIDString, title string, occurredAt time.Time) BookRemoved {
	return BookRemoved{
		BookID:     bookID,
		Title:      title,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookRemoved) EventType() string {
	return BookRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookRemoved) IsErrorEvent() bool {
	return false
}
