// Package createcheckoutsession implements the Create Checkout Session use case.
//
// The provider is called outside of any transaction. The pending payment is only recorded after
// the provider returned a session, so a failed call leaves no payment row behind.
package createcheckoutsession
