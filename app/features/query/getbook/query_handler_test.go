package getbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := t.Context()
	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")
	handler := getbook.NewQueryHandler(store)

	// arrange
	book := GivenBook(t, ctx, store, 3)

	// act
	found, err := handler.Handle(ctx, getbook.BuildQuery(book.ID))
	_, missingErr := handler.Handle(ctx, getbook.BuildQuery(GivenUniqueID(t)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, book.Title, found.Title)
	assert.NotEmpty(t, found.AuthorName)
	assert.Equal(t, 3, found.CopiesAvailable)
	assert.ErrorIs(t, missingErr, circulation.ErrBookNotFound)
}
