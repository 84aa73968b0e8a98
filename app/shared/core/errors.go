package core

import "errors"

// Business rule violations. They are returned after the rejection was recorded in the audit trail.
var (
	ErrUserInactive            = errors.New("user is not active")
	ErrAlreadyReturned         = errors.New("loan was already returned")
	ErrLoanStillActive         = errors.New("loan is still active, return the book first")
	ErrBookHasActiveLoans      = errors.New("book has active loans")
	ErrUserHasActiveLoans      = errors.New("user has active loans")
	ErrAuthorHasBooks          = errors.New("author has books")
	ErrCopiesOnLoanExceedTotal = errors.New("copies on loan exceed the new total")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInvalidSignature        = errors.New("invalid signature")
)

// ErrValidationFailed marks malformed input. It is joined with a descriptive error.
var ErrValidationFailed = errors.New("validation failed")

// Payment provider failures. No payment row is written when the provider call fails.
var (
	ErrPaymentProviderUnavailable = errors.New("payment provider unavailable")
	ErrPaymentProviderRejected    = errors.New("payment provider rejected the request")
)
