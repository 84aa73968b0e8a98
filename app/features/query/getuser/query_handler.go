package getuser

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the QueryHandler for store operations.
type Store interface {
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// QueryHandler reads a single library member from the primary.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the library member or a not found error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (circulation.LibraryUser, error) {
	var row circulation.LibraryUser

	err := h.store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		row, err = tx.GetUser(ctx, query.UserID)

		return err
	})

	return row, err
}
