package removeauthor

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command represents the intent to remove an author from the catalog.
type Command struct {
	AuthorID   uuid.UUID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "RemoveAuthor"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(authorID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		AuthorID:   authorID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
