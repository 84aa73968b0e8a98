package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// AppendDomainEvent maps the event to a StorableEvent and appends it in the transaction behind appender.
func AppendDomainEvent(ctx context.Context, appender circulation.EventAppender, event core.DomainEvent) error {
	storableEvent, err := StorableEventFrom(event, EventMetadataFor(ctx))
	if err != nil {
		return err
	}

	return appender.AppendEvents(ctx, storableEvent)
}
