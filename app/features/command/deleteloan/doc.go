// Package deleteloan implements the Delete Loan use case.
//
// Only returned loans can be deleted, an active loan still holds a copy of the book.
// Deleting has no effect on the inventory or balance ledgers.
package deleteloan
