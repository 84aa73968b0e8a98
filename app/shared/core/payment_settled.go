package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSettledEventType is the event type identifier.
const PaymentSettledEventType = "PaymentSettled"

// PaymentSettled represents a completed payment debited from the outstanding balance of a user.
type PaymentSettled struct {
	PaymentID          PaymentIDString
	UserID             UserIDString
	Amount             MoneyString
	OutstandingBalance MoneyString
	PaymentIntent      string
	OccurredAt         OccurredAt
}

// BuildPaymentSettled creates a new PaymentSettled event.
func BuildPaymentSettled(
	paymentID PaymentIDString,
	userID UserIDString,
	amount decimal.Decimal,
	outstandingBalance decimal.Decimal,
	paymentIntent string,
	occurredAt time.Time,
) PaymentSettled {

	return PaymentSettled{
		PaymentID:          paymentID,
		UserID:             userID,
		Amount:             ToMoneyString(amount),
		OutstandingBalance: ToMoneyString(outstandingBalance),
		PaymentIntent:      paymentIntent,
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PaymentSettled) EventType() string {
	return PaymentSettledEventType
}

// HasOccurredAt returns when this event occurred.
func (e PaymentSettled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PaymentSettled) IsErrorEvent() bool {
	return false
}
