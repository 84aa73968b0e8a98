package removeauthor

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	failureReasonAuthorNotFound = "author not found"
	failureReasonHasBooks       = "author has books"
)

// State is what the business rules need to know about the locked author row.
type State struct {
	AuthorFound bool
	Name        string
	Books       int
}

// Decide implements the business logic to determine whether an author may be removed.
//
// Business Rules:
//
//	GIVEN: An author with AuthorID
//	WHEN: RemoveAuthor command is received
//	THEN: AuthorRemoved event is generated
//	ERROR: "author not found" if there is no author with AuthorID
//	ERROR: "author has books" if any book references the author
func Decide(s State, command Command) core.DecisionResult {
	authorID := command.AuthorID.String()

	if !s.AuthorFound {
		event := core.BuildRemovingAuthorFailed(authorID, failureReasonAuthorNotFound, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), circulation.ErrAuthorNotFound))
	}

	if s.Books > 0 {
		event := core.BuildRemovingAuthorFailed(authorID, failureReasonHasBooks, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), core.ErrAuthorHasBooks))
	}

	return core.SuccessDecision(core.BuildAuthorRemoved(authorID, s.Name, command.OccurredAt))
}
