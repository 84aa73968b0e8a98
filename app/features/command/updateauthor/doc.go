// Package updateauthor implements the Update Author use case. It replaces all editable fields of an author.
package updateauthor
