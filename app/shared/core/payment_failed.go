package core

import (
	"time"
)

// PaymentFailedEventType is the event type identifier.
const PaymentFailedEventType = "PaymentFailed"

// PaymentFailed represents a pending payment whose checkout session expired or whose payment failed.
// It records a provider outcome, not a rejected command.
type PaymentFailed struct {
	PaymentID         PaymentIDString
	UserID            UserIDString
	ProviderEventType string
	OccurredAt        OccurredAt
}

// BuildPaymentFailed creates a new PaymentFailed event.
func BuildPaymentFailed(paymentID PaymentIDString, userID UserIDString, providerEventType string, occurredAt time.Time) PaymentFailed {
	return PaymentFailed{
		PaymentID:         paymentID,
		UserID:            userID,
		ProviderEventType: providerEventType,
		OccurredAt:        ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PaymentFailed) EventType() string {
	return PaymentFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e PaymentFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PaymentFailed) IsErrorEvent() bool {
	return false
}
