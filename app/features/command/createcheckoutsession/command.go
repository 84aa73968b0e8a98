package createcheckoutsession

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// DefaultDescription names the payment when the caller gives none.
const DefaultDescription = "Pago de multa de biblioteca"

// Command represents the intent of a member to pay an amount towards the outstanding balance.
type Command struct {
	PaymentID   uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "CreateCheckoutSession"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	paymentID uuid.UUID,
	userID uuid.UUID,
	amount decimal.Decimal,
	description string,
	occurredAt time.Time,
) Command {

	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultDescription
	}

	return Command{
		PaymentID:   paymentID,
		UserID:      userID,
		Amount:      amount,
		Description: description,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the input independent of any stored state.
// The amount must be positive, whole cents, and fit the payments.amount column.
func (c Command) Validate() error {
	if c.UserID == uuid.Nil {
		return core.ValidationError{Field: "userId", Message: "Usuario inválido"}
	}

	if !c.Amount.IsPositive() ||
		!c.Amount.Equal(c.Amount.Round(circulation.MoneyPlaces)) ||
		c.Amount.GreaterThanOrEqual(circulation.MaxMoneyAmount) {

		return core.ErrInvalidAmount
	}

	return nil
}
