package registeruser

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command represents the intent to register a library member.
type Command struct {
	UserID      uuid.UUID
	Name        string
	Email       string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "RegisterUser"
}

// ContactDetails are the optional fields of a member, shared by registering and updating.
type ContactDetails struct {
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	userID uuid.UUID,
	name string,
	email string,
	contact ContactDetails,
	occurredAt time.Time,
) Command {

	return Command{
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		Phone:       contact.Phone,
		Address:     contact.Address,
		DateOfBirth: contact.DateOfBirth,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the input independent of any stored state.
func (c Command) Validate() error {
	return ValidateNameAndEmail(c.Name, c.Email)
}

// ValidateNameAndEmail holds the input rules every member row must satisfy.
func ValidateNameAndEmail(name, email string) error {
	return errors.Join(
		core.ValidateField("name", name, "required", "El nombre es requerido"),
		core.ValidateField("email", email, "required,email", "Email inválido"),
	)
}
