package getloan

import "github.com/google/uuid"

// Query reads one loan with its joins.
type Query struct {
	LoanID uuid.UUID
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "GetLoan"
}

// BuildQuery creates a new Query.
func BuildQuery(loanID uuid.UUID) Query {
	return Query{LoanID: loanID}
}
