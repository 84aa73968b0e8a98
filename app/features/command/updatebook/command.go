package updatebook

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command represents the intent to change the details and the number of copies of a book.
type Command struct {
	BookID      uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Details     addbook.BookDetails
	CopiesTotal int
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "UpdateBook"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	authorID uuid.UUID,
	title string,
	copiesTotal int,
	details addbook.BookDetails,
	occurredAt time.Time,
) Command {

	details.Language = strings.TrimSpace(details.Language)

	return Command{
		BookID:      bookID,
		AuthorID:    authorID,
		Title:       strings.TrimSpace(title),
		Details:     details,
		CopiesTotal: copiesTotal,
		OccurredAt:  core.ToOccurredAt(occurredAt),
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
