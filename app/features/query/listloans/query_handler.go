package listloans

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the QueryHandler for store operations.
type Store interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// QueryHandler reads the matching loans.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the loans matching query, never nil.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]circulation.LoanDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var loans []circulation.LoanDetails

	err := h.store.WithinReadTx(circulation.WithEventualConsistency(ctx), func(ctx context.Context, tx circulation.Tx) error {
		var err error
		loans, err = tx.ListLoans(ctx, circulation.LoanFilter{
			Status: query.Status,
			Search: query.Search,
			AsOf:   query.AsOf,
		})

		return err
	})
	if err != nil {
		return nil, err
	}

	return loans, nil
}
