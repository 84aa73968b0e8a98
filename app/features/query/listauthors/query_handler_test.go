package listauthors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listauthors"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := t.Context()
	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")
	handler := listauthors.NewQueryHandler(store)

	// arrange
	first := GivenAuthor(t, ctx, store)
	second := GivenAuthor(t, ctx, store)

	// act
	all, err := handler.Handle(ctx, listauthors.BuildQuery(""))
	require.NoError(t, err)
	byName, err := handler.Handle(ctx, listauthors.BuildQuery(second.Name))
	require.NoError(t, err)

	// assert
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "ordered by name")
	require.Len(t, byName, 1)
	assert.Equal(t, second.ID, byName[0].ID)
}
