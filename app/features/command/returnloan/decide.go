package returnloan

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	failureReasonLoanNotFound    = "loan not found"
	failureReasonAlreadyReturned = "loan was already returned"
)

// State is what the business rules need to know about the locked loan row.
type State struct {
	LoanFound  bool
	IsReturned bool
	BookID     uuid.UUID
	UserID     uuid.UUID
	DueDate    time.Time
}

// StateFrom derives the State from an existing loan.
func StateFrom(loan circulation.Loan) State {
	return State{
		LoanFound:  true,
		IsReturned: loan.IsReturned,
		BookID:     loan.BookID,
		UserID:     loan.UserID,
		DueDate:    loan.DueDate,
	}
}

// Decide implements the business logic to determine whether a loan can be returned and what it costs.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: An active loan with LoanID
//	WHEN: ReturnLoan command is received
//	THEN: LoanReturned event is generated with the whole days late and the late fee
//	ERROR: "loan not found" if there is no loan with LoanID
//	ERROR: "loan was already returned" if the loan is terminal
//
// The late fee is the number of whole days between the start of the due date and the return, times feePerDay.
func Decide(s State, command Command, feePerDay decimal.Decimal) core.DecisionResult {
	if !s.LoanFound {
		event := core.BuildReturningLoanFailed(command.LoanID, failureReasonLoanNotFound, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), circulation.ErrLoanNotFound))
	}

	if s.IsReturned {
		event := core.BuildReturningLoanFailed(command.LoanID, failureReasonAlreadyReturned, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), core.ErrAlreadyReturned))
	}

	return core.SuccessDecision(
		core.BuildLoanReturned(
			command.LoanID,
			s.BookID,
			s.UserID,
			core.DaysLate(s.DueDate, command.OccurredAt),
			core.LateFee(s.DueDate, command.OccurredAt, feePerDay),
			command.OccurredAt,
		),
	)
}
