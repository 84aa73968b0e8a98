package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanReturnedEventType is the event type identifier.
const LoanReturnedEventType = "LoanReturned"

// LoanReturned represents when a borrowed copy came back. LateFee is "0.00" for loans returned in time.
type LoanReturned struct {
	LoanID     LoanIDString
	BookID     BookIDString
	UserID     UserIDString
	DaysLate   int
	LateFee    MoneyString
	OccurredAt OccurredAt
}

// BuildLoanReturned creates a new LoanReturned event.
func BuildLoanReturned(
	loanID uuid.UUID,
	bookID uuid.UUID,
	userID uuid.UUID,
	daysLate int,
	lateFee decimal.Decimal,
	occurredAt time.Time,
) LoanReturned {

	return LoanReturned{
		LoanID:     loanID.String(),
		BookID:     bookID.String(),
		UserID:     userID.String(),
		DaysLate:   daysLate,
		LateFee:    ToMoneyString(lateFee),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanReturned) EventType() string {
	return LoanReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanReturned) IsErrorEvent() bool {
	return false
}
