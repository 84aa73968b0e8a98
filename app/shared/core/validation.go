package core

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError is malformed command input. Message is meant for the caller and is surfaced verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidationFailed) hold for every ValidationError.
func (e ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidateField checks value against validator tags like "required,email" and returns a ValidationError with
// message if it does not satisfy them.
func ValidateField(field string, value any, tag string, message string) error {
	if err := validate.Var(value, tag); err != nil {
		return ValidationError{Field: field, Message: message}
	}

	return nil
}
