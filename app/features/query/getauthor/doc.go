// Package getauthor implements the GetAuthor query use case.
package getauthor
