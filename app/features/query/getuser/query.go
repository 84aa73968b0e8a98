package getuser

import "github.com/google/uuid"

// Query reads one library member.
type Query struct {
	UserID uuid.UUID
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "GetUser"
}

// BuildQuery creates a new Query.
func BuildQuery(id uuid.UUID) Query {
	return Query{UserID: id}
}
