package updateauthor

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn circulation.TxFunc) error
}

// CommandHandler orchestrates the complete command processing workflow: Validate → Lock → Update.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewCommandHandler creates a new CommandHandler with the provided Store dependency.
func NewCommandHandler(store Store, retryOptions ...shell.RetryOption) CommandHandler {
	return CommandHandler{
		store:        store,
		retryOptions: retryOptions,
	}
}

// Handle updates the author and returns the stored row. An unknown author yields circulation.ErrAuthorNotFound.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.Author, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return circulation.Author{}, shell.HandlerResult{}, err
	}

	var author circulation.Author

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.WithinTx(retryCtx, func(ctx context.Context, tx circulation.Tx) error {
			existing, err := tx.LockAuthor(ctx, command.AuthorID)
			if err != nil {
				return err
			}

			existing.Name = command.Name
			existing.Biography = command.Biography
			existing.Nationality = command.Nationality
			existing.BirthDate = command.BirthDate

			author, err = tx.UpdateAuthor(ctx, existing)

			return err
		})
	}, h.retryOptions...)

	if err != nil {
		return circulation.Author{}, shell.NewErrorResult(retryMetrics), err
	}

	return author, shell.NewSuccessResult(retryMetrics), nil
}
