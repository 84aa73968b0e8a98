package removeauthor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removeauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success_WhenAuthorHasNoBooks(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removeauthor.NewCommandHandler(store)

	// arrange
	author := GivenAuthor(t, ctx, store)

	// act
	_, _, err := handler.Handle(ctx, removeauthor.BuildCommand(author.ID, time.Now()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{core.AuthorRemovedEventType}, AppendedEventTypes(t, ctx, store))

	_, _, err = handler.Handle(ctx, removeauthor.BuildCommand(author.ID, time.Now()))
	assert.ErrorIs(t, err, circulation.ErrAuthorNotFound, "the author must be gone")
}

func Test_CommandHandler_Handle_Rejected_WhenAuthorHasBooks(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := removeauthor.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, ctx, store, 1)

	// act
	_, _, err := handler.Handle(ctx, removeauthor.BuildCommand(book.AuthorID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorHasBooks)
	assert.Equal(t, []string{core.RemovingAuthorFailedEventType}, AppendedEventTypes(t, ctx, store))
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	return store
}
