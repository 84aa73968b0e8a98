package returnloan

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn circulation.TxFunc) error
}

// CommandHandler orchestrates the complete command processing workflow.
// It handles only business logic: Lock → Decide → Mark returned → Credit → Release → Append.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	store        Store
	feePerDay    decimal.Decimal
	retryOptions []shell.RetryOption
}

// NewCommandHandler creates a new CommandHandler that charges feePerDay for every whole day late.
func NewCommandHandler(store Store, feePerDay decimal.Decimal, retryOptions ...shell.RetryOption) CommandHandler {
	return CommandHandler{
		store:        store,
		feePerDay:    feePerDay,
		retryOptions: retryOptions,
	}
}

// Handle returns the loan and answers with the returned loan including its late fee.
// It retries concurrency conflicts and returns explicit HandlerResult.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.LoanDetails, shell.HandlerResult, error) {
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
		var s State

		locked, err := tx.LockLoan(ctx, command.LoanID)
		switch {
		case err == nil:
			s = StateFrom(locked)
		case !errors.Is(err, circulation.ErrLoanNotFound):
			return err
		}

		result := Decide(s, command, h.feePerDay)

		if rejection = result.HasError(); rejection != nil {
			return shell.AppendDomainEvent(ctx, tx, result.Event)
		}

		lateFee := core.LateFee(s.DueDate, command.OccurredAt, h.feePerDay)

		if _, err = tx.MarkLoanReturned(ctx, command.LoanID, command.OccurredAt, lateFee); err != nil {
			return err
		}

		events := []core.DomainEvent{result.Event}

		if lateFee.IsPositive() {
			balance, creditErr := tx.CreditBalance(ctx, s.UserID, lateFee)
			if creditErr != nil {
				return creditErr
			}

			events = append(events, core.BuildLateFeeAssessed(command.LoanID, s.UserID, lateFee, balance, command.OccurredAt))
		}

		if _, err = tx.ReleaseCopy(ctx, s.BookID); err != nil {
			return err
		}

		for _, event := range events {
			if err = shell.AppendDomainEvent(ctx, tx, event); err != nil {
				return err
			}
		}

		loan, err = tx.GetLoanDetails(ctx, command.LoanID)

		return err
	})

	if err != nil {
		return circulation.LoanDetails{}, err
	}

	return loan, rejection
}
