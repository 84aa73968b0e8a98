package userpayments

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the QueryHandler for store operations.
type Store interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// QueryHandler reads payment histories.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the payments of the member, never nil. An unknown member has no payments.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]circulation.Payment, error) {
	var payments []circulation.Payment

	err := h.store.WithinReadTx(circulation.WithEventualConsistency(ctx), func(ctx context.Context, tx circulation.Tx) error {
		var err error
		payments, err = tx.ListPaymentsForUser(ctx, query.UserID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return payments, nil
}
