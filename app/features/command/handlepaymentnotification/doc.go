// Package handlepaymentnotification implements the Handle Payment Notification use case.
//
// A completed checkout settles the pending payment and debits the member's balance by the
// recorded amount. Expired or failed checkouts mark the pending payment failed. Repeated
// notifications for a payment that already left pending change nothing.
package handlepaymentnotification
