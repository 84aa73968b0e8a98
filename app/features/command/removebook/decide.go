package removebook

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	failureReasonBookNotFound   = "book not found"
	failureReasonHasActiveLoans = "book has active loans"
)

// State is what the business rules need to know about the locked book row.
type State struct {
	BookFound   bool
	Title       string
	ActiveLoans int
}

// Decide implements the business logic to determine whether a book may be removed.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: RemoveBook command is received
//	THEN: BookRemoved event is generated
//	ERROR: "book not found" if there is no book with BookID
//	ERROR: "book has active loans" if any copy is still lent
func Decide(s State, command Command) core.DecisionResult {
	bookID := command.BookID.String()

	if !s.BookFound {
		event := core.BuildRemovingBookFailed(bookID, failureReasonBookNotFound, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), circulation.ErrBookNotFound))
	}

	if s.ActiveLoans > 0 {
		event := core.BuildRemovingBookFailed(bookID, failureReasonHasActiveLoans, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), core.ErrBookHasActiveLoans))
	}

	return core.SuccessDecision(core.BuildBookRemoved(bookID, s.Title, command.OccurredAt))
}
