package core

import (
	"time"
)

// BookAddedEventType is the event type identifier.
const BookAddedEventType = "BookAdded"

// BookAdded represents when a book with a number of copies was added to the catalog.
type BookAdded struct {
	BookID      BookIDString
	AuthorID    AuthorIDString
	Title       string
	CopiesTotal int
	OccurredAt  OccurredAt
}

// BuildBookAdded creates a new BookAdded event.
func BuildBookAdded(bookID BookIDString, authorID AuthorIDString, title string, copiesTotal int, occurredAt time.Time) BookAdded {
	return BookAdded{
		BookID:      bookID,
		AuthorID:    authorID,
		Title:       title,
		CopiesTotal: copiesTotal,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookAdded) EventType() string {
	return BookAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAdded) IsErrorEvent() bool {
	return false
}
