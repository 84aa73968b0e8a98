package getauthor

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the QueryHandler for store operations.
type Store interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// QueryHandler reads a single author from the primary.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the author or a not found error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (circulation.Author, error) {
	var row circulation.Author

	err := h.store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		row, err = tx.GetAuthor(ctx, query.AuthorID)

		return err
	})

	return row, err
}
