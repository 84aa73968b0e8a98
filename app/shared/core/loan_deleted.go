package core

import (
	"time"
)

// LoanDeletedEventType is the event type identifier.
const LoanDeletedEventType = "LoanDeleted"

// LoanDeleted represents the administrative deletion of a returned loan.
type LoanDeleted struct {
	LoanID     LoanIDString
	OccurredAt OccurredAt
}

// BuildLoanDeleted creates a new LoanDeleted event.
func BuildLoanDeleted(loanID LoanIDString, occurredAt time.Time) LoanDeleted {
	return LoanDeleted{
		LoanID:     loanID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanDeleted) EventType() string {
	return LoanDeletedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanDeleted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanDeleted) IsErrorEvent() bool {
	return false
}
