package handlepaymentnotification_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/handlepaymentnotification"
	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

const webhookSecret = "whsec_test"

var now = time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)

func Test_CommandHandler_Handle_CompletedSettlesPayment(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	logger := testdoubles.NewContextualLoggerSpy(true)
	handler := handlepaymentnotification.NewCommandHandler(store, newVerifier(t), logger)

	// arrange
	user := GivenActiveUser(t, ctx, store)
	GivenCreditedBalance(t, ctx, store, user.ID, decimal.NewFromInt(15))
	payment := GivenPendingPayment(t, ctx, store, user.ID, decimal.NewFromInt(15))
	payload := completedPayload(payment.ProviderSessionID, "15")

	// act
	output, result, err := handler.Handle(ctx, signed(payload))

	// assert
	require.NoError(t, err)
	assert.Equal(t, handlepaymentnotification.OutcomeSettled, output.Outcome)
	assert.Equal(t, payment.ID, output.PaymentID)
	assert.False(t, result.Idempotent)

	settled := PaymentsOf(t, ctx, store, user.ID)[0]
	assert.Equal(t, circulation.PaymentCompleted, settled.Status)
	require.NotNil(t, settled.ProviderPaymentIntent)
	assert.Equal(t, "pi_123", *settled.ProviderPaymentIntent)
	require.NotNil(t, settled.PaidAt)
	assert.True(t, CurrentUser(t, ctx, store, user.ID).OutstandingBalance.IsZero())
	assert.Equal(t, []string{core.PaymentSettledEventType}, AppendedEventTypes(t, ctx, store))
	assert.Zero(t, logger.GetTotalRecordCount())
}

func Test_CommandHandler_Handle_CompletedTwiceDebitsOnce(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := handlepaymentnotification.NewCommandHandler(store, newVerifier(t), testdoubles.NewContextualLoggerSpy(false))

	// arrange
	user := GivenActiveUser(t, ctx, store)
	GivenCreditedBalance(t, ctx, store, user.ID, decimal.NewFromInt(20))
	payment := GivenPendingPayment(t, ctx, store, user.ID, decimal.NewFromInt(15))
	command := signed(completedPayload(payment.ProviderSessionID, "15"))

	_, _, err := handler.Handle(ctx, command)
	require.NoError(t, err, "error in arranging test data")

	// act
	output, result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, handlepaymentnotification.OutcomeAlreadyProcessed, output.Outcome)
	assert.True(t, result.Idempotent)
	assert.True(t, decimal.NewFromInt(5).Equal(CurrentUser(t, ctx, store, user.ID).OutstandingBalance))
	assert.Len(t, AppendedEvents(t, ctx, store, core.PaymentSettledEventType), 1)
}

func Test_CommandHandler_Handle_AppliesRecordedAmount_WhenMetadataDiffers(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	logger := testdoubles.NewContextualLoggerSpy(true)
	handler := handlepaymentnotification.NewCommandHandler(store, newVerifier(t), logger)

	// arrange
	user := GivenActiveUser(t, ctx, store)
	payment := GivenPendingPayment(t, ctx, store, user.ID, decimal.NewFromInt(15))

	// act
	_, _, err := handler.Handle(ctx, signed(completedPayload(payment.ProviderSessionID, "150")))

	// assert
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-15).Equal(CurrentUser(t, ctx, store, user.ID).OutstandingBalance),
		"the recorded amount is debited and the balance may go negative")
	assert.True(t, logger.HasWarnLog("payment notification amount differs from recorded amount, recorded amount applied"))
}

func Test_CommandHandler_Handle_ExpiredMarksPaymentFailed(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := handlepaymentnotification.NewCommandHandler(store, newVerifier(t), testdoubles.NewContextualLoggerSpy(false))

	// arrange
	user := GivenActiveUser(t, ctx, store)
	GivenCreditedBalance(t, ctx, store, user.ID, decimal.NewFromInt(15))
	payment := GivenPendingPayment(t, ctx, store, user.ID, decimal.NewFromInt(15))
	payload := []byte(fmt.Sprintf(`{"id":"evt_2","type":"checkout.session.expired","data":{"object":{"id":%q}}}`, payment.ProviderSessionID))

	// act
	output, _, err := handler.Handle(ctx, signed(payload))

	// assert
	require.NoError(t, err)
	assert.Equal(t, handlepaymentnotification.OutcomeMarkedFailed, output.Outcome)
	assert.Equal(t, circulation.PaymentFailed, PaymentsOf(t, ctx, store, user.ID)[0].Status)
	assert.True(t, decimal.NewFromInt(15).Equal(CurrentUser(t, ctx, store, user.ID).OutstandingBalance))
	assert.Equal(t, []string{core.PaymentFailedEventType}, AppendedEventTypes(t, ctx, store))
}

func Test_CommandHandler_Handle_AcknowledgesUnknownSession(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	logger := testdoubles.NewContextualLoggerSpy(true)
	handler := handlepaymentnotification.NewCommandHandler(store, newVerifier(t), logger)

	// act
	output, _, err := handler.Handle(ctx, signed(completedPayload("cs_test_unknown", "15")))

	// assert
	require.NoError(t, err)
	assert.Equal(t, handlepaymentnotification.OutcomeUnknownSession, output.Outcome)
	assert.True(t, logger.HasWarnLog("payment notification for unknown session acknowledged"))
	assert.Empty(t, AppendedEventTypes(t, ctx, store))
}

func Test_CommandHandler_Handle_IgnoresOtherTypes(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := handlepaymentnotification.NewCommandHandler(store, newVerifier(t), testdoubles.NewContextualLoggerSpy(false))

	// act
	output, _, err := handler.Handle(ctx, signed([]byte(`{"id":"evt_3","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, handlepaymentnotification.OutcomeIgnored, output.Outcome)
}

func Test_CommandHandler_Handle_Rejected_WhenSignatureInvalid(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	logger := testdoubles.NewContextualLoggerSpy(true)
	handler := handlepaymentnotification.NewCommandHandler(store, newVerifier(t), logger)

	// arrange
	user := GivenActiveUser(t, ctx, store)
	GivenCreditedBalance(t, ctx, store, user.ID, decimal.NewFromInt(15))
	payment := GivenPendingPayment(t, ctx, store, user.ID, decimal.NewFromInt(15))
	payload := completedPayload(payment.ProviderSessionID, "15")
	command := handlepaymentnotification.BuildCommand(payload, paymentprovider.Sign(payload, "whsec_forged", now), now)

	// act
	_, _, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidSignature)
	assert.True(t, logger.HasWarnLog("payment notification rejected: invalid signature"))
	assert.Equal(t, circulation.PaymentPending, PaymentsOf(t, ctx, store, user.ID)[0].Status)
	assert.True(t, decimal.NewFromInt(15).Equal(CurrentUser(t, ctx, store, user.ID).OutstandingBalance))
	assert.Empty(t, AppendedEventTypes(t, ctx, store))
}

func completedPayload(sessionID string, metadataAmount string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": %q,
			"payment_intent": "pi_123",
			"payment_status": "paid",
			"metadata": {"userId": "ignored", "amount": %q}
		}}
	}`, sessionID, metadataAmount))
}

func signed(payload []byte) handlepaymentnotification.Command {
	return handlepaymentnotification.BuildCommand(payload, paymentprovider.Sign(payload, webhookSecret, now), now)
}

func newVerifier(t *testing.T) *paymentprovider.Client {
	t.Helper()

	client, err := paymentprovider.NewClient(
		paymentprovider.Config{SecretKey: "sk_test_key", WebhookSecret: webhookSecret},
		paymentprovider.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err, "error in arranging test data")

	return client
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	return store
}
