// Package listloans implements the List Loans query use case.
//
// Loans are returned newest first by loan date, joined with the book title and the borrower.
// The status filter "overdue" selects active loans whose due date lies before the day of AsOf.
// Listings tolerate slightly stale data and read from a replica when one is configured.
package listloans
