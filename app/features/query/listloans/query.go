package listloans

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Query selects loans by status and a free-text search.
type Query struct {
	Status circulation.LoanStatusFilter
	Search string
	AsOf   time.Time
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "ListLoans"
}

// BuildQuery creates a new Query. An empty status selects all loans.
func BuildQuery(status string, search string, asOf time.Time) Query {
	return Query{
		Status: circulation.LoanStatusFilter(strings.TrimSpace(status)),
		Search: strings.TrimSpace(search),
		AsOf:   asOf,
	}
}

// Validate rejects unknown status filters.
func (q Query) Validate() error {
	return core.ValidateField("status", string(q.Status), "omitempty,oneof=active returned overdue", "Estado inválido")
}
