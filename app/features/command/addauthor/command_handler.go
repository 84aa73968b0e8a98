package addauthor

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn circulation.TxFunc) error
}

// CommandHandler orchestrates the complete command processing workflow: Validate → Insert → Append.
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

// Handle adds the author and returns the stored row.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.Author, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return circulation.Author{}, shell.HandlerResult{}, err
	}

	var author circulation.Author

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.WithinTx(retryCtx, func(ctx context.Context, tx circulation.Tx) error {
			var err error

			author, err = tx.InsertAuthor(ctx, circulation.Author{
				ID:          command.AuthorID,
				Name:        command.Name,
				Biography:   command.Biography,
				Nationality: command.Nationality,
				BirthDate:   command.BirthDate,
			})
			if err != nil {
				return err
			}

			return shell.AppendDomainEvent(ctx, tx, core.BuildAuthorAdded(author.ID.String(), author.Name, command.OccurredAt))
		})
	}, h.retryOptions...)

	if err != nil {
		return circulation.Author{}, shell.NewErrorResult(retryMetrics), err
	}

	return author, shell.NewSuccessResult(retryMetrics), nil
}
