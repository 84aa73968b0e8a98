package addbook

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

// CommandHandler orchestrates the complete command processing workflow: Validate → Check author → Insert → Append.
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

// Handle adds the book and returns the stored row including the author name.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.Book, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return circulation.Book{}, shell.HandlerResult{}, err
	}

	var book circulation.Book

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.WithinTx(retryCtx, func(ctx context.Context, tx circulation.Tx) error {
			if _, err := tx.GetAuthor(ctx, command.AuthorID); err != nil {
				return err
			}

			var err error

			book, err = tx.InsertBook(ctx, circulation.Book{
				ID:              command.BookID,
				Title:           command.Title,
				ISBN:            command.ISBN,
				AuthorID:        command.AuthorID,
				Genre:           command.Genre,
				PublicationYear: command.PublicationYear,
				Publisher:       command.Publisher,
				Pages:           command.Pages,
				Language:        command.Language,
				Description:     command.Description,
				CopiesTotal:     command.CopiesTotal,
				CopiesAvailable: command.CopiesTotal,
			})
			if err != nil {
				return err
			}

			return shell.AppendDomainEvent(ctx, tx, core.BuildBookAdded(
				book.ID.String(),
				book.AuthorID.String(),
				book.Title,
				book.CopiesTotal,
				command.OccurredAt,
			))
		})
	}, h.retryOptions...)

	if err != nil {
		return circulation.Book{}, shell.NewErrorResult(retryMetrics), err
	}

	return book, shell.NewSuccessResult(retryMetrics), nil
}
