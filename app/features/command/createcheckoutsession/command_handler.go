package createcheckoutsession

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn circulation.TxFunc) error
	WithinReadTx(ctx context.Context, fn circulation.TxFunc) error
}

// SessionCreator is the payment provider.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, req paymentprovider.CheckoutSessionRequest) (paymentprovider.CheckoutSession, error)
}

// Output is what the caller needs to redirect the member to the provider.
type Output struct {
	PaymentID uuid.UUID
	SessionID string
	URL       string
}

// CommandHandler orchestrates the complete command processing workflow:
// Validate → Read user → Call provider → Insert pending payment → Append.
type CommandHandler struct {
	store         Store
	provider      SessionCreator
	publicBaseURL string
	retryOptions  []shell.RetryOption
}

// NewCommandHandler creates a new CommandHandler. publicBaseURL is where the provider sends the member back to.
func NewCommandHandler(
	store Store,
	provider SessionCreator,
	publicBaseURL string,
	retryOptions ...shell.RetryOption,
) CommandHandler {

	return CommandHandler{
		store:         store,
		provider:      provider,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		retryOptions:  retryOptions,
	}
}

// Handle creates the provider session and records the pending payment.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Output, shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return Output{}, shell.HandlerResult{}, err
	}

	var user circulation.LibraryUser

	err := h.store.WithinReadTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		user, err = tx.GetUser(ctx, command.UserID)

		return err
	})
	if err != nil {
		return Output{}, shell.HandlerResult{}, err
	}

	session, err := h.provider.CreateCheckoutSession(ctx, h.sessionRequestFor(command, user))
	if err != nil {
		return Output{}, shell.HandlerResult{}, err
	}

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.WithinTx(retryCtx, func(ctx context.Context, tx circulation.Tx) error {
			payment, err := tx.InsertPayment(ctx, circulation.Payment{
				ID:                command.PaymentID,
				UserID:            command.UserID,
				Amount:            command.Amount,
				Description:       command.Description,
				ProviderSessionID: session.ID,
				Status:            circulation.PaymentPending,
			})
			if err != nil {
				return err
			}

			return shell.AppendDomainEvent(ctx, tx, core.BuildPaymentSessionCreated(
				payment.ID.String(),
				payment.UserID.String(),
				payment.Amount,
				payment.ProviderSessionID,
				command.OccurredAt,
			))
		})
	}, h.retryOptions...)

	if err != nil {
		return Output{}, shell.NewErrorResult(retryMetrics), err
	}

	return Output{PaymentID: command.PaymentID, SessionID: session.ID, URL: session.URL}, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) sessionRequestFor(command Command, user circulation.LibraryUser) paymentprovider.CheckoutSessionRequest {
	return paymentprovider.CheckoutSessionRequest{
		Amount:             command.Amount,
		ProductName:        command.Description,
		ProductDescription: fmt.Sprintf("Usuario: %s (%s)", user.Name, user.MemberID),
		CustomerEmail:      user.Email,
		SuccessURL:         h.publicBaseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          h.publicBaseURL + "/users",
		Metadata: map[string]string{
			"userId": command.UserID.String(),
			"amount": command.Amount.String(),
		},
	}
}
