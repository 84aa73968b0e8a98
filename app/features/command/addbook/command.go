package addbook

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command represents the intent to add a book with a number of copies to the catalog.
type Command struct {
	BookID          uuid.UUID
	AuthorID        uuid.UUID
	Title           string
	ISBN            *string
	Genre           *string
	PublicationYear *int
	Publisher       *string
	Pages           *int
	Language        string
	Description     *string
	CopiesTotal     int
	OccurredAt      core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "AddBook"
}

// BookDetails are the descriptive fields of a book, shared by adding and updating.
type BookDetails struct {
	ISBN            *string
	Genre           *string
	PublicationYear *int
	Publisher       *string
	Pages           *int
	Language        string
	Description     *string
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	authorID uuid.UUID,
	title string,
	copiesTotal int,
	details BookDetails,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:          bookID,
		AuthorID:        authorID,
		Title:           strings.TrimSpace(title),
		ISBN:            details.ISBN,
		Genre:           details.Genre,
		PublicationYear: details.PublicationYear,
		Publisher:       details.Publisher,
		Pages:           details.Pages,
		Language:        strings.TrimSpace(details.Language),
		Description:     details.Description,
		CopiesTotal:     copiesTotal,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the input independent of any stored state.
func (c Command) Validate() error {
	return errors.Join(
		core.ValidateField("title", c.Title, "required", "El título es requerido"),
		core.ValidateField("author_id", c.AuthorID, "required", "Debes seleccionar un autor"),
		core.ValidateField("copies_total", c.CopiesTotal, "min=1", "Debe haber al menos una copia"),
	)
}
