package updateuser

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

// CommandHandler orchestrates the complete command processing workflow: Validate → Lock → Update → Append.
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

// Handle updates the member and returns the stored row. The balance is never touched here.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.LibraryUser, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return circulation.LibraryUser{}, shell.HandlerResult{}, err
	}

	var user circulation.LibraryUser

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.WithinTx(retryCtx, func(ctx context.Context, tx circulation.Tx) error {
			existing, err := tx.LockUserForUpdate(ctx, command.UserID)
			if err != nil {
				return err
			}

			existing.Name = command.Name
			existing.Email = command.Email
			existing.Phone = command.Contact.Phone
			existing.Address = command.Contact.Address
			existing.DateOfBirth = command.Contact.DateOfBirth

			if command.IsActive != nil {
				existing.IsActive = *command.IsActive
			}

			if user, err = tx.UpdateUser(ctx, existing); err != nil {
				return err
			}

			return shell.AppendDomainEvent(ctx, tx, core.BuildUserUpdated(user.ID.String(), user.IsActive, command.OccurredAt))
		})
	}, h.retryOptions...)

	if err != nil {
		return circulation.LibraryUser{}, shell.NewErrorResult(retryMetrics), err
	}

	return user, shell.NewSuccessResult(retryMetrics), nil
}
