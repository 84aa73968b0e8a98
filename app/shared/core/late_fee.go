package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFeePerDay is the late fee per whole day past the due date.
var DefaultFeePerDay = decimal.NewFromInt(5)

const day = 24 * time.Hour

// DaysLate returns the number of whole days between the due date and returnedAt, never negative.
// The due date counts from the start of its calendar day in UTC.
func DaysLate(dueDate, returnedAt time.Time) int {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)

	late := returnedAt.UTC().Sub(due)
	if late <= 0 {
		return 0
	}

	return int(late / day)
}

// LateFee computes the fee for a loan returned at returnedAt: whole days late times feePerDay.
func LateFee(dueDate, returnedAt time.Time, feePerDay decimal.Decimal) decimal.Decimal {
	return feePerDay.Mul(decimal.NewFromInt(int64(DaysLate(dueDate, returnedAt)))).Round(2)
}
