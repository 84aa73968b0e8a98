package issueloan

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

// CommandHandler orchestrates the complete command processing workflow.
// It handles only business logic: Lock → Decide → Reserve → Insert → Append.
// All observability concerns are handled by the external observable wrapper.
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

// Handle issues the loan and returns it joined with the book title and the borrower.
// It retries concurrency conflicts and returns explicit HandlerResult.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.LoanDetails, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return circulation.LoanDetails{}, shell.HandlerResult{}, err
	}

	var loan circulation.LoanDetails

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		loan, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return circulation.LoanDetails{}, shell.NewErrorResult(retryMetrics), err
	}

	return loan, shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (circulation.LoanDetails, error) {
	var loan circulation.LoanDetails
	var rejection error

	err := h.store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		s, err := loadState(ctx, tx, command)
		if err != nil {
			return err
		}

		result := Decide(s, command)

		if rejection = result.HasError(); rejection != nil {
			return shell.AppendDomainEvent(ctx, tx, result.Event)
		}

		if _, err = tx.ReserveCopy(ctx, command.BookID); err != nil {
			return err
		}

		_, err = tx.InsertLoan(ctx, circulation.Loan{
			ID:       command.LoanID,
			BookID:   command.BookID,
			UserID:   command.UserID,
			LoanDate: command.OccurredAt,
			DueDate:  command.DueDate,
			Notes:    command.Notes,
		})
		if err != nil {
			return err
		}

		if err = shell.AppendDomainEvent(ctx, tx, result.Event); err != nil {
			return err
		}

		loan, err = tx.GetLoanDetails(ctx, command.LoanID)

		return err
	})

	if err != nil {
		return circulation.LoanDetails{}, err
	}

	return loan, rejection
}

// loadState locks the user before the book, the lock order all workflows follow.
func loadState(ctx context.Context, tx circulation.Tx, command Command) (State, error) {
	var s State

	user, err := tx.LockUserForShare(ctx, command.UserID)
	switch {
	case err == nil:
		s.UserIsActive = user.IsActive
	case !errors.Is(err, circulation.ErrUserNotFound):
		return State{}, err
	}

	book, err := tx.LockBook(ctx, command.BookID)
	switch {
	case err == nil:
		s.CopiesAvailable = book.CopiesAvailable
	case !errors.Is(err, circulation.ErrBookNotFound):
		return State{}, err
	}

	return s, nil
}
