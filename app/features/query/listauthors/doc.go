// Package listauthors implements the List Authors query use case.
//
// Authors are ordered by name. The search matches name or nationality case-insensitively.
package listauthors
