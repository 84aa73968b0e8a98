package addauthor

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command represents the intent to add an author to the catalog.
type Command struct {
	AuthorID    uuid.UUID
	Name        string
	Biography   *string
	Nationality *string
	BirthDate   *time.Time
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "AddAuthor"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	authorID uuid.UUID,
	name string,
	biography *string,
	nationality *string,
	birthDate *time.Time,
	occurredAt time.Time,
) Command {

	return Command{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(name),
		Biography:   biography,
		Nationality: nationality,
		BirthDate:   birthDate,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the input independent of any stored state.
func (c Command) Validate() error {
	return core.ValidateField("name", c.Name, "required", "El nombre es requerido")
}
