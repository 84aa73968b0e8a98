package updatebook

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	failureReasonBookNotFound     = "book not found"
	failureReasonCopiesOnLoanLeft = "copies on loan exceed the new total"
)

// State is what the business rules need to know about the locked book row.
type State struct {
	BookFound       bool
	CopiesTotal     int
	CopiesAvailable int
}

// CopiesOnLoan is the number of copies currently lent out.
func (s State) CopiesOnLoan() int {
	return s.CopiesTotal - s.CopiesAvailable
}

// Decide implements the business logic to determine whether the copies of a book can change.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: UpdateBook command is received
//	THEN: BookUpdated event is generated with the new total and the shifted availability
//	ERROR: "book not found" if there is no book with BookID
//	ERROR: "copies on loan exceed the new total" if fewer copies would exist than are lent out
func Decide(s State, command Command) core.DecisionResult {
	bookID := command.BookID.String()

	if !s.BookFound {
		event := core.BuildUpdatingBookFailed(bookID, failureReasonBookNotFound, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), circulation.ErrBookNotFound))
	}

	copiesAvailable := command.CopiesTotal - s.CopiesOnLoan()
	if copiesAvailable < 0 {
		event := core.BuildUpdatingBookFailed(bookID, failureReasonCopiesOnLoanLeft, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), core.ErrCopiesOnLoanExceedTotal))
	}

	return core.SuccessDecision(core.BuildBookUpdated(bookID, command.CopiesTotal, copiesAvailable, command.OccurredAt))
}
