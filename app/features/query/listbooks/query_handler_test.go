package listbooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listbooks"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := t.Context()
	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")
	handler := listbooks.NewQueryHandler(store)

	// arrange
	first := GivenBook(t, ctx, store, 1)
	second := GivenBook(t, ctx, store, 2)

	// act
	all, err := handler.Handle(ctx, listbooks.BuildQuery(""))
	require.NoError(t, err)
	byAuthor, err := handler.Handle(ctx, listbooks.BuildQuery(second.AuthorName))
	require.NoError(t, err)
	none, err := handler.Handle(ctx, listbooks.BuildQuery("no such title"))
	require.NoError(t, err)

	// assert
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "ordered by title")
	assert.Equal(t, second.ID, all[1].ID, "ordered by title")
	require.Len(t, byAuthor, 1)
	assert.Equal(t, second.ID, byAuthor[0].ID)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
