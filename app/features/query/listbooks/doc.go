// Package listbooks implements the List Books query use case.
//
// Books are ordered by title and carry the author name. The search matches title, ISBN or author name case-insensitively.
package listbooks
