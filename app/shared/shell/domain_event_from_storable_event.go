package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents circulation.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent circulation.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.LoanIssuedEventType:
		return unmarshal[core.LoanIssued](payload)
	case core.IssuingLoanFailedEventType:
		return unmarshal[core.IssuingLoanFailed](payload)
	case core.LoanReturnedEventType:
		return unmarshal[core.LoanReturned](payload)
	case core.LateFeeAssessedEventType:
		return unmarshal[core.LateFeeAssessed](payload)
	case core.ReturningLoanFailedEventType:
		return unmarshal[core.ReturningLoanFailed](payload)
	case core.LoanDeletedEventType:
		return unmarshal[core.LoanDeleted](payload)
	case core.DeletingLoanFailedEventType:
		return unmarshal[core.DeletingLoanFailed](payload)
	case core.AuthorAddedEventType:
		return unmarshal[core.AuthorAdded](payload)
	case core.AuthorRemovedEventType:
		return unmarshal[core.AuthorRemoved](payload)
	case core.RemovingAuthorFailedEventType:
		return unmarshal[core.RemovingAuthorFailed](payload)
	case core.BookAddedEventType:
		return unmarshal[core.BookAdded](payload)
	case core.BookUpdatedEventType:
		return unmarshal[core.BookUpdated](payload)
	case core.UpdatingBookFailedEventType:
		return unmarshal[core.UpdatingBookFailed](payload)
	case core.BookRemovedEventType:
		return unmarshal[core.BookRemoved](payload)
	case core.RemovingBookFailedEventType:
		return unmarshal[core.RemovingBookFailed](payload)
	case core.UserRegisteredEventType:
		return unmarshal[core.UserRegistered](payload)
	case core.UserUpdatedEventType:
		return unmarshal[core.UserUpdated](payload)
	case core.UserRemovedEventType:
		return unmarshal[core.UserRemoved](payload)
	case core.RemovingUserFailedEventType:
		return unmarshal[core.RemovingUserFailed](payload)
	case core.PaymentSessionCreatedEventType:
		return unmarshal[core.PaymentSessionCreated](payload)
	case core.PaymentSettledEventType:
		return unmarshal[core.PaymentSettled](payload)
	case core.PaymentFailedEventType:
		return unmarshal[core.PaymentFailed](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
