package deleteloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	failureReasonLoanNotFound    = "loan not found"
	failureReasonLoanStillActive = "loan is still active"
)

// State is what the business rules need to know about the locked loan row.
type State struct {
	LoanFound  bool
	IsReturned bool
}

// Decide implements the business logic to determine whether a loan may be deleted.
//
// Business Rules:
//
//	GIVEN: A returned loan with LoanID
//	WHEN: DeleteLoan command is received
//	THEN: LoanDeleted event is generated
//	ERROR: "loan not found" if there is no loan with LoanID
//	ERROR: "loan is still active" if the book was not returned yet
func Decide(s State, command Command) core.DecisionResult {
	loanID := command.LoanID.String()

	if !s.LoanFound {
		event := core.BuildDeletingLoanFailed(loanID, failureReasonLoanNotFound, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), circulation.ErrLoanNotFound))
	}

	if !s.IsReturned {
		event := core.BuildDeletingLoanFailed(loanID, failureReasonLoanStillActive, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), core.ErrLoanStillActive))
	}

	return core.SuccessDecision(core.BuildLoanDeleted(loanID, command.OccurredAt))
}
