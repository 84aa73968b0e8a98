package userpayments

import "github.com/google/uuid"

// Query selects the payments of one member.
type Query struct {
	UserID uuid.UUID
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "UserPayments"
}

// BuildQuery creates a new Query.
func BuildQuery(userID uuid.UUID) Query {
	return Query{UserID: userID}
}
