package core

import (
	"time"

	"github.com/google/uuid"
)

// LoanIssuedEventType is the event type identifier.
const LoanIssuedEventType = "LoanIssued"

// LoanIssued represents when a book copy was lent to a user.
type LoanIssued struct {
	LoanID          LoanIDString
	BookID          BookIDString
	UserID          UserIDString
	DueDate         string
	CopiesAvailable int
	OccurredAt      OccurredAt
}

// BuildLoanIssued creates a new LoanIssued event.
func BuildLoanIssued(
	loanID uuid.UUID,
	bookID uuid.UUID,
	userID uuid.UUID,
	dueDate time.Time,
	copiesAvailable int,
	occurredAt time.Time,
) LoanIssued {

	return LoanIssued{
		LoanID:          loanID.String(),
		BookID:          bookID.String(),
		UserID:          userID.String(),
		DueDate:         dueDate.Format(time.DateOnly),
		CopiesAvailable: copiesAvailable,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanIssued) EventType() string {
	return LoanIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanIssued) IsErrorEvent() bool {
	return false
}
