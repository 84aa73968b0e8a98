package listbooks

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the QueryHandler for store operations.
type Store interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// QueryHandler reads the matching books.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the matching books, never nil.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]circulation.Book, error) {
	var rows []circulation.Book

	err := h.store.WithinReadTx(circulation.WithEventualConsistency(ctx), func(ctx context.Context, tx circulation.Tx) error {
		var err error
		rows, err = tx.ListBooks(ctx, query.Search)

		return err
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}
