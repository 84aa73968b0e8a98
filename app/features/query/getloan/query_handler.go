package getloan

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the QueryHandler for store operations.
type Store interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// QueryHandler reads a single loan from the primary.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the loan or circulation.ErrLoanNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (circulation.LoanDetails, error) {
	var loan circulation.LoanDetails

	err := h.store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		loan, err = tx.GetLoanDetails(ctx, query.LoanID)

		return err
	})

	return loan, err
}
