package getbook

import "github.com/google/uuid"

// Query reads one book.
type Query struct {
	BookID uuid.UUID
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "GetBook"
}

// BuildQuery creates a new Query.
func BuildQuery(id uuid.UUID) Query {
	return Query{BookID: id}
}
