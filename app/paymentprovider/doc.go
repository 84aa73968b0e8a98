// Package paymentprovider is a client for a Stripe-compatible checkout API.
//
// It creates hosted checkout sessions and verifies signed webhook notifications
// (header "t=<unix>,v1=<hex hmac-sha256>"). Transport failures and timeouts map to
// core.ErrPaymentProviderUnavailable, refused requests to core.ErrPaymentProviderRejected.
package paymentprovider
