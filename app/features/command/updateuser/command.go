package updateuser

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command represents the intent to change a member's data or activation.
// A nil IsActive keeps the stored activation.
type Command struct {
	UserID     uuid.UUID
	Name       string
	Email      string
	Contact    registeruser.ContactDetails
	IsActive   *bool
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "UpdateUser"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	userID uuid.UUID,
	name string,
	email string,
	contact registeruser.ContactDetails,
	isActive *bool,
	occurredAt time.Time,
) Command {

	return Command{
		UserID:     userID,
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Contact:    contact,
		IsActive:   isActive,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the input independent of any stored state.
func (c Command) Validate() error {
	return registeruser.ValidateNameAndEmail(c.Name, c.Email)
}
