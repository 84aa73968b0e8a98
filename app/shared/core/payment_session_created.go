package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSessionCreatedEventType is the event type identifier.
const PaymentSessionCreatedEventType = "PaymentSessionCreated"

// PaymentSessionCreated represents a pending payment recorded after the provider opened a checkout session.
type PaymentSessionCreated struct {
	PaymentID         PaymentIDString
	UserID            UserIDString
	Amount            MoneyString
	ProviderSessionID string
	OccurredAt        OccurredAt
}

// BuildPaymentSessionCreated creates a new PaymentSessionCreated event.
func BuildPaymentSessionCreated(
	paymentID PaymentIDString,
	userID UserIDString,
	amount decimal.Decimal,
	providerSessionID string,
	occurredAt time.Time,
) PaymentSessionCreated {

	return PaymentSessionCreated{
		PaymentID:         paymentID,
		UserID:            userID,
		Amount:            ToMoneyString(amount),
		ProviderSessionID: providerSessionID,
		OccurredAt:        ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PaymentSessionCreated) EventType() string {
	return PaymentSessionCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e PaymentSessionCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PaymentSessionCreated) IsErrorEvent() bool {
	return false
}
