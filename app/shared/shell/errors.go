package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// rejectionErrors are the expected outcomes of a command that leave the business state untouched.
var rejectionErrors = []error{
	core.ErrUserInactive,
	core.ErrAlreadyReturned,
	core.ErrLoanStillActive,
	core.ErrBookHasActiveLoans,
	core.ErrUserHasActiveLoans,
	core.ErrAuthorHasBooks,
	core.ErrCopiesOnLoanExceedTotal,
	core.ErrInvalidAmount,
	core.ErrInvalidSignature,
	core.ErrValidationFailed,
	circulation.ErrOutOfStock,
	circulation.ErrAuthorNotFound,
	circulation.ErrBookNotFound,
	circulation.ErrUserNotFound,
	circulation.ErrLoanNotFound,
	circulation.ErrPaymentNotFound,
}

// IsRejectionError reports whether err is a business rule rejection or a lookup miss rather than a technical failure.
func IsRejectionError(err error) bool {
	for _, target := range rejectionErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
