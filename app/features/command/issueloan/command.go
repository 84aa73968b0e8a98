package issueloan

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Command represents the intent to lend a copy of a book to a library user until the due date.
type Command struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	UserID     uuid.UUID
	DueDate    time.Time
	Notes      *string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "IssueLoan"
}

// BuildCommand creates a new Command with the provided parameters. The due date is reduced to its calendar day.
func BuildCommand(
	loanID uuid.UUID,
	bookID uuid.UUID,
	userID uuid.UUID,
	dueDate time.Time,
	notes *string,
	occurredAt time.Time,
) Command {

	return Command{
		LoanID:     loanID,
		BookID:     bookID,
		UserID:     userID,
		DueDate:    circulation.TruncateToDate(dueDate),
		Notes:      notes,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the input independent of any stored state.
func (c Command) Validate() error {
	var dueDateErr error
	if c.DueDate.IsZero() {
		dueDateErr = core.ValidationError{Field: "due_date", Message: "La fecha de devolución es requerida"}
	}

	return errors.Join(
		core.ValidateField("book_id", c.BookID, "required", "Debes seleccionar un libro"),
		core.ValidateField("user_id", c.UserID, "required", "Debes seleccionar un usuario"),
		dueDateErr,
	)
}
