package updatebook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn circulation.TxFunc) error
}

// CommandHandler orchestrates the complete command processing workflow: Validate → Lock → Decide → Update → Append.
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

// Handle updates the book and returns the stored row including the author name.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.Book, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return circulation.Book{}, shell.HandlerResult{}, err
	}

	var book circulation.Book

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		book, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return circulation.Book{}, shell.NewErrorResult(retryMetrics), err
	}

	return book, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (circulation.Book, error) {
	var book circulation.Book
	var rejection error

	err := h.store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var s State

		existing, err := tx.LockBook(ctx, command.BookID)
		switch {
		case err == nil:
			s = State{BookFound: true, CopiesTotal: existing.CopiesTotal, CopiesAvailable: existing.CopiesAvailable}
		case !errors.Is(err, circulation.ErrBookNotFound):
			return err
		}

		result := Decide(s, command)

		if rejection = result.HasError(); rejection != nil {
			return shell.AppendDomainEvent(ctx, tx, result.Event)
		}

		if _, err = tx.GetAuthor(ctx, command.AuthorID); err != nil {
			return err
		}

		existing.Title = command.Title
		existing.AuthorID = command.AuthorID
		existing.ISBN = command.Details.ISBN
		existing.Genre = command.Details.Genre
		existing.PublicationYear = command.Details.PublicationYear
		existing.Publisher = command.Details.Publisher
		existing.Pages = command.Details.Pages
		existing.Description = command.Details.Description
		existing.CopiesTotal = command.CopiesTotal
		existing.CopiesAvailable = command.CopiesTotal - s.CopiesOnLoan()

		if command.Details.Language != "" {
			existing.Language = command.Details.Language
		}

		if book, err = tx.UpdateBook(ctx, existing); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, result.Event)
	})

	if err != nil {
		return circulation.Book{}, err
	}

	return book, rejection
}
