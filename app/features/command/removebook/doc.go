// Package removebook implements the Remove Book use case.
//
// The book row is locked for update before its active loans are counted, so no loan can be
// issued between the check and the delete. Returned loans of the book are deleted with it.
package removebook
