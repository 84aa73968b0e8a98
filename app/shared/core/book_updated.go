package core

import (
	"time"
)

// BookUpdatedEventType is the event type identifier.
const BookUpdatedEventType = "BookUpdated"

// BookUpdated represents when the catalog data or the number of copies of a book changed.
type BookUpdated struct {
	BookID          BookIDString
	CopiesTotal     int
	CopiesAvailable int
	OccurredAt      OccurredAt
}

// BuildBookUpdated creates a new BookUpdated event.
func BuildBookUpdated(bookID BookIDString, copiesTotal int, copiesAvailable int, occurredAt time.Time) BookUpdated {
	return BookUpdated{
		BookID:          bookID,
		CopiesTotal:     copiesTotal,
		CopiesAvailable: copiesAvailable,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookUpdated) EventType() string {
	return BookUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookUpdated) IsErrorEvent() bool {
	return false
}
