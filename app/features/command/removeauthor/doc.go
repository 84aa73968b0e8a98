// Package removeauthor implements the Remove Author use case. Authors with books cannot be removed.
package removeauthor
