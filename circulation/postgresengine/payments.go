package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const tablePayments = "payments"

func paymentColumns() []any {
	return []any{
		goqu.I("payments.id"),
		goqu.I("payments.user_id"),
		goqu.L(`"payments"."amount"::text`),
		goqu.I("payments.description"),
		goqu.I("payments.provider_session_id"),
		goqu.I("payments.provider_payment_intent"),
		goqu.I("payments.status"),
		goqu.I("payments.paid_at"),
		goqu.I("payments.created_at"),
		goqu.I("payments.updated_at"),
	}
}

func scanPayment(row rowScanner) (circulation.Payment, error) {
	var p circulation.Payment
	var rawAmount, status string

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&rawAmount,
		&p.Description,
		&p.ProviderSessionID,
		&p.ProviderPaymentIntent,
		&status,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return circulation.Payment{}, err
	}

	p.Status = circulation.PaymentStatus(status)
	p.Amount, err = decimal.NewFromString(rawAmount)

	return p, err
}

func (t *pgTx) scanOnePayment(ctx context.Context, action string, stmt sqlBuilder) (circulation.Payment, error) {
	var payment circulation.Payment

	found, err := t.queryOne(ctx, action, stmt, func(row rowScanner) error {
		var scanErr error
		payment, scanErr = scanPayment(row)
		return scanErr
	})
	if err != nil {
		return circulation.Payment{}, err
	}

	if !found {
		return circulation.Payment{}, circulation.ErrPaymentNotFound
	}

	return payment, nil
}

// InsertPayment stores a new payment, normally in status pending.
func (t *pgTx) InsertPayment(ctx context.Context, payment circulation.Payment) (circulation.Payment, error) {
	status := payment.Status
	if status == "" {
		status = circulation.PaymentPending
	}

	stmt := dialect().Insert(tablePayments).
		Rows(goqu.Record{
			"id":                      newID(payment.ID).String(),
			"user_id":                 payment.UserID.String(),
			"amount":                  goqu.L("CAST(? AS NUMERIC)", payment.Amount.String()),
			"description":             payment.Description,
			"provider_session_id":     payment.ProviderSessionID,
			"provider_payment_intent": payment.ProviderPaymentIntent,
			"status":                  string(status),
		}).
		Returning(paymentColumns()...)

	inserted, err := t.scanOnePayment(ctx, "insert payment", stmt)
	if errors.Is(err, circulation.ErrForeignKeyViolation) {
		return circulation.Payment{}, errors.Join(circulation.ErrUserNotFound, err)
	}

	return inserted, err
}

// LockPaymentBySessionID reads the payment of a provider session FOR UPDATE.
func (t *pgTx) LockPaymentBySessionID(ctx context.Context, sessionID string) (circulation.Payment, error) {
	stmt := dialect().From(tablePayments).
		Select(paymentColumns()...).
		Where(goqu.I("payments.provider_session_id").Eq(sessionID)).
		ForUpdate(exp.Wait)

	return t.scanOnePayment(ctx, "lock payment by session id", stmt)
}

// MarkPaymentCompleted settles a pending payment. A payment that already left pending is a concurrency conflict.
func (t *pgTx) MarkPaymentCompleted(
	ctx context.Context,
	paymentID uuid.UUID,
	paymentIntent *string,
	paidAt time.Time,
) (circulation.Payment, error) {

	return t.leavePending(ctx, "mark payment completed", paymentID, goqu.Record{
		"status":                  string(circulation.PaymentCompleted),
		"provider_payment_intent": paymentIntent,
		"paid_at":                 goqu.L("?::timestamptz", paidAt.UTC().Format(time.RFC3339Nano)),
		"updated_at":              goqu.L("NOW()"),
	})
}

// MarkPaymentFailed fails a pending payment.
func (t *pgTx) MarkPaymentFailed(ctx context.Context, paymentID uuid.UUID) (circulation.Payment, error) {
	return t.leavePending(ctx, "mark payment failed", paymentID, goqu.Record{
		"status":     string(circulation.PaymentFailed),
		"updated_at": goqu.L("NOW()"),
	})
}

func (t *pgTx) leavePending(ctx context.Context, action string, paymentID uuid.UUID, set goqu.Record) (circulation.Payment, error) {
	stmt := dialect().Update(tablePayments).
		Set(set).
		Where(
			goqu.C("id").Eq(paymentID.String()),
			goqu.C("status").Eq(string(circulation.PaymentPending)),
		).
		Returning(paymentColumns()...)

	payment, err := t.scanOnePayment(ctx, action, stmt)
	if errors.Is(err, circulation.ErrPaymentNotFound) {
		return circulation.Payment{}, circulation.ErrConcurrencyConflict
	}

	return payment, err
}

// ListPaymentsForUser returns the payments of a user, newest first.
func (t *pgTx) ListPaymentsForUser(ctx context.Context, userID uuid.UUID) ([]circulation.Payment, error) {
	stmt := dialect().From(tablePayments).
		Select(paymentColumns()...).
		Where(goqu.I("payments.user_id").Eq(userID.String())).
		Order(goqu.I("payments.created_at").Desc())

	payments := make([]circulation.Payment, 0)

	err := t.query(ctx, "list payments for user", stmt, func(row rowScanner) error {
		payment, scanErr := scanPayment(row)
		if scanErr != nil {
			return scanErr
		}

		payments = append(payments, payment)

		return nil
	})

	return payments, err
}
