// Package returnloan implements the Return Loan use case.
//
// The loan row is locked for update and Decide rejects loans that are unknown or already returned.
// Otherwise the late fee is computed from the due date, the loan is marked returned with a
// conditional update, a positive fee is credited to the user's balance and the copy is released.
// Everything commits as one transaction together with LoanReturned and, for a positive fee,
// LateFeeAssessed. A release that would exceed the total copies aborts the transaction with
// circulation.ErrInventoryInvariantViolated.
package returnloan
