package handlepaymentnotification

import (
	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Outcome is what handling a notification did.
type Outcome string

const (
	OutcomeSettled          Outcome = "settled"
	OutcomeMarkedFailed     Outcome = "marked_failed"
	OutcomeAlreadyProcessed Outcome = "already_processed"
	OutcomeUnknownSession   Outcome = "unknown_session"
	OutcomeIgnored          Outcome = "ignored"
)

// State is what the business rules need to know about the locked payment row.
type State struct {
	PaymentFound bool
	Status       circulation.PaymentStatus
}

// Decide implements the business logic for a verified provider notification.
//
// Business Rules:
//
//	GIVEN: A pending payment for the session of the notification
//	WHEN: checkout.session.completed is received
//	THEN: the payment is settled
//	WHEN: checkout.session.expired or checkout.session.async_payment_failed is received
//	THEN: the payment is marked failed
//	GIVEN: A payment that already left pending, or no payment at all
//	THEN: nothing changes
//	Any other notification type is ignored.
func Decide(s State, notificationType string) Outcome {
	var target Outcome

	switch notificationType {
	case paymentprovider.EventCheckoutSessionCompleted:
		target = OutcomeSettled
	case paymentprovider.EventCheckoutSessionExpired, paymentprovider.EventCheckoutSessionAsyncPaymentFailed:
		target = OutcomeMarkedFailed
	default:
		return OutcomeIgnored
	}

	if !s.PaymentFound {
		return OutcomeUnknownSession
	}

	if s.Status != circulation.PaymentPending {
		return OutcomeAlreadyProcessed
	}

	return target
}

// Concerns reports whether notifications of this type can change a payment.
func Concerns(notificationType string) bool {
	return Decide(State{PaymentFound: true, Status: circulation.PaymentPending}, notificationType) != OutcomeIgnored
}
