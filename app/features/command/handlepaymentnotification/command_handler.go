package handlepaymentnotification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	logMsgSignatureRejected = "payment notification rejected: invalid signature"
	logMsgUnknownSession    = "payment notification for unknown session acknowledged"
	logMsgAlreadyProcessed  = "payment notification for processed payment ignored"
	logMsgIgnoredType       = "payment notification type ignored"
	logMsgAmountMismatch    = "payment notification amount differs from recorded amount, recorded amount applied"
)

const (
	logAttrSessionID          = "session_id"
	logAttrNotificationType   = "notification_type"
	logAttrRecordedAmount     = "recorded_amount"
	logAttrNotificationAmount = "notification_amount"
	logAttrPaymentID          = "payment_id"
)

const metadataKeyAmount = "amount"

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn circulation.TxFunc) error
}

// NotificationVerifier checks the signature of a raw notification and decodes it.
type NotificationVerifier interface {
	VerifyNotification(payload []byte, signatureHeader string) (paymentprovider.Notification, error)
}

// Output tells the caller what happened. PaymentID is uuid.Nil when no payment was involved.
type Output struct {
	Outcome   Outcome
	PaymentID uuid.UUID
}

// CommandHandler orchestrates the complete command processing workflow: Verify → Lock → Decide → Apply → Append.
type CommandHandler struct {
	store        Store
	verifier     NotificationVerifier
	logger       shell.ContextualLogger
	retryOptions []shell.RetryOption
}

// NewCommandHandler creates a new CommandHandler. Rejected signatures and anomalies are logged with logger.
func NewCommandHandler(
	store Store,
	verifier NotificationVerifier,
	logger shell.ContextualLogger,
	retryOptions ...shell.RetryOption,
) CommandHandler {

	return CommandHandler{
		store:        store,
		verifier:     verifier,
		logger:       logger,
		retryOptions: retryOptions,
	}
}

// Handle verifies and applies the notification.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Output, shell.HandlerResult, error) {
	notification, err := h.verifier.VerifyNotification(command.Payload, command.SignatureHeader)
	if err != nil {
		if errors.Is(err, core.ErrInvalidSignature) {
			h.logger.WarnContext(ctx, logMsgSignatureRejected, shell.LogAttrError, err.Error())
		}

		return Output{}, shell.HandlerResult{}, err
	}

	if !Concerns(notification.Type) {
		h.logger.DebugContext(ctx, logMsgIgnoredType, logAttrNotificationType, notification.Type)
		return Output{Outcome: OutcomeIgnored}, shell.HandlerResult{}, nil
	}

	var output Output
	var payment circulation.Payment

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		output, payment, execErr = h.executeCommand(retryCtx, notification, command.ReceivedAt)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Output{}, shell.NewErrorResult(retryMetrics), err
	}

	session := notification.Session()

	switch output.Outcome {
	case OutcomeUnknownSession:
		h.logger.WarnContext(ctx, logMsgUnknownSession,
			logAttrSessionID, session.ID,
			logAttrNotificationType, notification.Type)

	case OutcomeAlreadyProcessed:
		h.logger.InfoContext(ctx, logMsgAlreadyProcessed,
			logAttrSessionID, session.ID,
			logAttrPaymentID, payment.ID.String(),
			logAttrNotificationType, notification.Type)

		return output, shell.NewIdempotentResult(retryMetrics), nil

	case OutcomeSettled:
		h.warnOnAmountMismatch(ctx, payment, session)
	}

	return output, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	notification paymentprovider.Notification,
	receivedAt core.OccurredAt,
) (Output, circulation.Payment, error) {

	var output Output
	var payment circulation.Payment

	err := h.store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var s State
		var err error

		payment, err = tx.LockPaymentBySessionID(ctx, notification.Session().ID)
		switch {
		case err == nil:
			s = State{PaymentFound: true, Status: payment.Status}
		case !errors.Is(err, circulation.ErrPaymentNotFound):
			return err
		}

		output = Output{Outcome: Decide(s, notification.Type), PaymentID: payment.ID}

		switch output.Outcome {
		case OutcomeSettled:
			return settle(ctx, tx, payment, notification.Session().PaymentIntent, receivedAt)
		case OutcomeMarkedFailed:
			return markFailed(ctx, tx, payment, notification.Type, receivedAt)
		default:
			return nil
		}
	})

	if err != nil {
		return Output{}, circulation.Payment{}, err
	}

	return output, payment, nil
}

// settle always debits the recorded amount, never the one from the notification metadata.
func settle(
	ctx context.Context,
	tx circulation.Tx,
	payment circulation.Payment,
	paymentIntent *string,
	receivedAt core.OccurredAt,
) error {

	if _, err := tx.MarkPaymentCompleted(ctx, payment.ID, paymentIntent, receivedAt); err != nil {
		return err
	}

	balance, err := tx.DebitBalance(ctx, payment.UserID, payment.Amount)
	if err != nil {
		return err
	}

	var intent string
	if paymentIntent != nil {
		intent = *paymentIntent
	}

	return shell.AppendDomainEvent(ctx, tx, core.BuildPaymentSettled(
		payment.ID.String(),
		payment.UserID.String(),
		payment.Amount,
		balance,
		intent,
		receivedAt,
	))
}

func markFailed(
	ctx context.Context,
	tx circulation.Tx,
	payment circulation.Payment,
	notificationType string,
	receivedAt core.OccurredAt,
) error {

	if _, err := tx.MarkPaymentFailed(ctx, payment.ID); err != nil {
		return err
	}

	return shell.AppendDomainEvent(ctx, tx, core.BuildPaymentFailed(
		payment.ID.String(),
		payment.UserID.String(),
		notificationType,
		receivedAt,
	))
}

func (h CommandHandler) warnOnAmountMismatch(ctx context.Context, payment circulation.Payment, session paymentprovider.SessionObject) {
	raw, ok := session.Metadata[metadataKeyAmount]
	if !ok {
		return
	}

	if notified, err := decimal.NewFromString(raw); err == nil && notified.Equal(payment.Amount) {
		return
	}

	h.logger.WarnContext(ctx, logMsgAmountMismatch,
		logAttrPaymentID, payment.ID.String(),
		logAttrSessionID, session.ID,
		logAttrRecordedAmount, core.ToMoneyString(payment.Amount),
		logAttrNotificationAmount, raw)
}
