package removeuser

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	failureReasonUserNotFound   = "user not found"
	failureReasonHasActiveLoans = "user has active loans"
)

// State is what the business rules need to know about the locked user row.
type State struct {
	UserFound   bool
	MemberID    string
	ActiveLoans int
}

// Decide implements the business logic to determine whether a user may be removed.
//
// Business Rules:
//
//	GIVEN: A user with UserID
//	WHEN: RemoveUser command is received
//	THEN: UserRemoved event is generated
//	ERROR: "user not found" if there is no user with UserID
//	ERROR: "user has active loans" if the user still has books
func Decide(s State, command Command) core.DecisionResult {
	userID := command.UserID.String()

	if !s.UserFound {
		event := core.BuildRemovingUserFailed(userID, failureReasonUserNotFound, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), circulation.ErrUserNotFound))
	}

	if s.ActiveLoans > 0 {
		event := core.BuildRemovingUserFailed(userID, failureReasonHasActiveLoans, command.OccurredAt)
		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType(), core.ErrUserHasActiveLoans))
	}

	return core.SuccessDecision(core.BuildUserRemoved(userID, s.MemberID, command.OccurredAt))
}
