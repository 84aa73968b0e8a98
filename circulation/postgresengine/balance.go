package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// CreditBalance atomically adds amount to the user's outstanding balance.
func (t *pgTx) CreditBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, circulation.ErrNegativeAmount
	}

	return t.moveBalance(ctx, "credit balance", userID, `"outstanding_balance" + CAST(? AS NUMERIC)`, amount)
}

// DebitBalance atomically subtracts amount from the user's outstanding balance. The result may be negative.
func (t *pgTx) DebitBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, circulation.ErrNegativeAmount
	}

	return t.moveBalance(ctx, "debit balance", userID, `"outstanding_balance" - CAST(? AS NUMERIC)`, amount)
}

func (t *pgTx) moveBalance(
	ctx context.Context,
	action string,
	userID uuid.UUID,
	expression string,
	amount decimal.Decimal,
) (decimal.Decimal, error) {

	stmt := dialect().Update(tableUsers).
		Set(goqu.Record{
			"outstanding_balance": goqu.L(expression, amount.String()),
			"updated_at":          goqu.L("NOW()"),
		}).
		Where(goqu.C("id").Eq(userID.String())).
		Returning(goqu.L(`"outstanding_balance"::text`))

	var rawBalance string

	found, err := t.queryOne(ctx, action, stmt, func(row rowScanner) error {
		return row.Scan(&rawBalance)
	})
	if err != nil {
		return decimal.Zero, err
	}

	if !found {
		return decimal.Zero, circulation.ErrUserNotFound
	}

	balance, parseErr := decimal.NewFromString(rawBalance)
	if parseErr != nil {
		return decimal.Zero, fmt.Errorf("%w: outstanding_balance %q: %w", circulation.ErrScanningDBRowFailed, rawBalance, parseErr)
	}

	t.store.logOperationWithContext(
		ctx,
		logMsgBalanceChanged,
		logAttrOperation, action,
		logAttrUserID, userID.String(),
		logAttrAmount, amount.String(),
		logAttrBalance, balance.String(),
	)

	return balance, nil
}
