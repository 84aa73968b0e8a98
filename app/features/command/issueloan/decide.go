package issueloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	failureReasonUserInactive = "user is not active"
	failureReasonOutOfStock   = "no copies available"
)

// State is what the business rules need to know about the locked user and book rows.
// A user that does not exist counts as inactive, a book that does not exist has no copies available.
type State struct {
	UserIsActive    bool
	CopiesAvailable int
}

// Decide implements the business logic to determine whether a loan may be issued.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a user with UserID
//	WHEN: IssueLoan command is received
//	THEN: LoanIssued event is generated, one copy less is available
//	ERROR: "user is not active" if the user is unknown or deactivated
//	ERROR: "no copies available" if the book is unknown or all copies are on loan
func Decide(s State, command Command) core.DecisionResult {
	if !s.UserIsActive {
		event := core.BuildIssuingLoanFailed(command.BookID, command.UserID, failureReasonUserInactive, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), core.ErrUserInactive))
	}

	if s.CopiesAvailable <= 0 {
		event := core.BuildIssuingLoanFailed(command.BookID, command.UserID, failureReasonOutOfStock, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), circulation.ErrOutOfStock))
	}

	return core.SuccessDecision(
		core.BuildLoanIssued(
			command.LoanID,
			command.BookID,
			command.UserID,
			command.DueDate,
			s.CopiesAvailable-1,
			command.OccurredAt,
		),
	)
}
