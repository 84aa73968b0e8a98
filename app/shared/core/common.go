package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alias types keep the event payloads readable without full value objects.

// LoanIDString represents a loan identifier.
type LoanIDString = string

// BookIDString represents a book identifier.
type BookIDString = string

// UserIDString represents a library user identifier.
type UserIDString = string

// AuthorIDString represents an author identifier.
type AuthorIDString = string

// PaymentIDString represents a payment identifier.
type PaymentIDString = string

// MoneyString is a decimal amount with two places, e.g. "15.00".
type MoneyString = string

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// ToMoneyString formats an amount with exactly two decimal places.
func ToMoneyString(amount decimal.Decimal) MoneyString {
	return amount.StringFixed(2)
}
