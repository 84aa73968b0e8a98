package deleteloan

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

// CommandHandler orchestrates the complete command processing workflow: Lock → Decide → Delete → Append.
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

// Handle deletes the loan. It retries concurrency conflicts and returns explicit HandlerResult.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.NoOutput, shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NoOutput{}, shell.NewErrorResult(retryMetrics), err
	}

	return shell.NoOutput{}, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	var rejection error

	err := h.store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var s State

		loan, err := tx.LockLoan(ctx, command.LoanID)
		switch {
		case err == nil:
			s = State{LoanFound: true, IsReturned: loan.IsReturned}
		case !errors.Is(err, circulation.ErrLoanNotFound):
			return err
		}

		result := Decide(s, command)

		if rejection = result.HasError(); rejection != nil {
			return shell.AppendDomainEvent(ctx, tx, result.Event)
		}

		if err = tx.DeleteLoan(ctx, command.LoanID); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, result.Event)
	})

	if err != nil {
		return err
	}

	return rejection
}
