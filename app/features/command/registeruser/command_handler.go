package registeruser

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

// Handle registers the member and returns the stored row with its assigned member id.
func (h CommandHandler) Handle(ctx context.Context, command Command) (circulation.LibraryUser, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return circulation.LibraryUser{}, shell.HandlerResult{}, err
	}

	var user circulation.LibraryUser

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.WithinTx(retryCtx, func(ctx context.Context, tx circulation.Tx) error {
			var err error

			user, err = tx.InsertUser(ctx, circulation.LibraryUser{
				ID:               command.UserID,
				Name:             command.Name,
				Email:            command.Email,
				Phone:            command.Phone,
				Address:          command.Address,
				DateOfBirth:      command.DateOfBirth,
				RegistrationDate: command.OccurredAt,
				IsActive:         true,
			})
			if err != nil {
				return err
			}

			return shell.AppendDomainEvent(ctx, tx, core.BuildUserRegistered(
				user.ID.String(),
				user.MemberID,
				user.Name,
				command.OccurredAt,
			))
		})
	}, h.retryOptions...)

	if err != nil {
		return circulation.LibraryUser{}, shell.NewErrorResult(retryMetrics), err
	}

	return user, shell.NewSuccessResult(retryMetrics), nil
}
