package getauthor

import "github.com/google/uuid"

// Query reads one author.
type Query struct {
	AuthorID uuid.UUID
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "GetAuthor"
}

// BuildQuery creates a new Query.
func BuildQuery(id uuid.UUID) Query {
	return Query{AuthorID: id}
}
