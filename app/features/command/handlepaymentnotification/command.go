package handlepaymentnotification

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// Command carries a raw, not yet verified provider notification.
type Command struct {
	Payload         []byte
	SignatureHeader string
	ReceivedAt      core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "HandlePaymentNotification"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(payload []byte, signatureHeader string, receivedAt time.Time) Command {
	return Command{
		Payload:         payload,
		SignatureHeader: signatureHeader,
		ReceivedAt:      core.ToOccurredAt(receivedAt),
	}
}
