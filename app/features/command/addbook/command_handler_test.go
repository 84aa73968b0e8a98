package addbook_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := addbook.NewCommandHandler(store)

	// arrange
	author := GivenAuthor(t, ctx, store)
	isbn := "978-0-06-088328-7"
	command := addbook.BuildCommand(GivenUniqueID(t), author.ID, "Cien años de soledad", 3, addbook.BookDetails{ISBN: &isbn}, time.Now())

	// act
	book, _, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, command.BookID, book.ID)
	assert.Equal(t, author.Name, book.AuthorName)
	assert.Equal(t, 3, book.CopiesTotal)
	assert.Equal(t, 3, book.CopiesAvailable)
	assert.Equal(t, circulation.DefaultBookLanguage, book.Language)
	assert.Equal(t, &isbn, book.ISBN)
	assert.Equal(t, []string{core.BookAddedEventType}, AppendedEventTypes(t, ctx, store))
}

func Test_CommandHandler_Handle_Rejected_WhenAuthorUnknown(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := addbook.NewCommandHandler(store)

	// arrange
	command := addbook.BuildCommand(GivenUniqueID(t), GivenUniqueID(t), "Rayuela", 1, addbook.BookDetails{}, time.Now())

	// act
	_, _, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, circulation.ErrAuthorNotFound)
	assert.Empty(t, AppendedEventTypes(t, ctx, store))
}

func Test_CommandHandler_Handle_Rejected_WhenInputInvalid(t *testing.T) {
	// setup
	ctx := t.Context()
	store := newStore(t)
	handler := addbook.NewCommandHandler(store)

	// arrange
	command := addbook.BuildCommand(GivenUniqueID(t), uuid.Nil, "", 0, addbook.BookDetails{}, time.Now())

	// act
	_, _, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrValidationFailed)

	var validationErr core.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "El título es requerido", validationErr.Message)
	assert.Contains(t, err.Error(), "Debes seleccionar un autor")
	assert.Contains(t, err.Error(), "Debe haber al menos una copia")
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	return store
}
