package removeuser

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command represents the intent to remove a library user.
type Command struct {
	UserID     uuid.UUID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "RemoveUser"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
