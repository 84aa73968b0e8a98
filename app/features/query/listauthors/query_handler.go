package listauthors

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the QueryHandler for store operations.
type Store interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// QueryHandler reads the matching authors.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the matching authors, never nil.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]circulation.Author, error) {
	var rows []circulation.Author

	err := h.store.WithinReadTx(circulation.WithEventualConsistency(ctx), func(ctx context.Context, tx circulation.Tx) error {
		var err error
		rows, err = tx.ListAuthors(ctx, query.Search)

		return err
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}
