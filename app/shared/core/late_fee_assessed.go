package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LateFeeAssessedEventType is the event type identifier.
const LateFeeAssessedEventType = "LateFeeAssessed"

// LateFeeAssessed represents a late fee credited to the outstanding balance of a user.
type LateFeeAssessed struct {
	LoanID             LoanIDString
	UserID             UserIDString
	Amount             MoneyString
	OutstandingBalance MoneyString
	OccurredAt         OccurredAt
}

// BuildLateFeeAssessed creates a new LateFeeAssessed event.
func BuildLateFeeAssessed(
	loanID uuid.UUID,
	userID uuid.UUID,
	amount decimal.Decimal,
	outstandingBalance decimal.Decimal,
	occurredAt time.Time,
) LateFeeAssessed {

	return LateFeeAssessed{
		LoanID:             loanID.String(),
		UserID:             userID.String(),
		Amount:             ToMoneyString(amount),
		OutstandingBalance: ToMoneyString(outstandingBalance),
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LateFeeAssessed) EventType() string {
	return LateFeeAssessedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LateFeeAssessed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LateFeeAssessed) IsErrorEvent() bool {
	return false
}
