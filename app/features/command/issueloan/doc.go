// Package issueloan implements the Issue Loan use case.
//
// A loan is issued to an active user if the book has an available copy. The user row is locked
// for share and the book row for update, then Decide checks the business rules. On success the
// copy is reserved with a conditional update, the loan is inserted and LoanIssued is appended,
// all in one transaction. A rejection commits only the IssuingLoanFailed event.
package issueloan
