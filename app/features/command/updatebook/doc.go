// Package updatebook implements the Update Book use case.
//
// Changing copies_total shifts copies_available by the same delta, so the number of copies on
// loan stays the same. A new total below the number of copies on loan is rejected.
package updatebook
