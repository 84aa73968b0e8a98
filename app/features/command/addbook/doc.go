// Package addbook implements the Add Book use case.
//
// A new book starts with all copies available. The author must exist.
package addbook
