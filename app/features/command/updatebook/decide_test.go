package updatebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/updatebook"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_Decide(t *testing.T) {
	testCases := []struct {
		name              string
		state             updatebook.State
		newTotal          int
		expectedErr       error
		expectedAvailable int
	}{
		{name: "more copies raise availability", state: updatebook.State{BookFound: true, CopiesTotal: 3, CopiesAvailable: 1}, newTotal: 5, expectedAvailable: 3},
		{name: "fewer copies lower availability", state: updatebook.State{BookFound: true, CopiesTotal: 3, CopiesAvailable: 2}, newTotal: 2, expectedAvailable: 1},
		{name: "total may equal copies on loan", state: updatebook.State{BookFound: true, CopiesTotal: 3, CopiesAvailable: 1}, newTotal: 2, expectedAvailable: 0},
		{name: "total below copies on loan", state: updatebook.State{BookFound: true, CopiesTotal: 3, CopiesAvailable: 0}, newTotal: 2, expectedErr: core.ErrCopiesOnLoanExceedTotal},
		{name: "unknown book", state: updatebook.State{}, newTotal: 2, expectedErr: circulation.ErrBookNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := updatebook.BuildCommand(uuid.New(), uuid.New(), "Pedro Páramo", tc.newTotal, addbook.BookDetails{}, time.Now())

			// act
			result := updatebook.Decide(tc.state, command)

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tc.expectedErr)
				assert.Equal(t, core.UpdatingBookFailedEventType, result.Event.EventType())
				return
			}

			event, ok := result.Event.(core.BookUpdated)
			assert.True(t, ok, "event should be BookUpdated")
			assert.Equal(t, tc.newTotal, event.CopiesTotal)
			assert.Equal(t, tc.expectedAvailable, event.CopiesAvailable)
		})
	}
}
