package listbooks

import "strings"

// Query selects books by a free-text search. An empty search selects all.
type Query struct {
	Search string
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "ListBooks"
}

// BuildQuery creates a new Query.
func BuildQuery(search string) Query {
	return Query{Search: strings.TrimSpace(search)}
}
