package shell

import (
	"context"

	"github.com/google/uuid"
)

type correlationKey struct{}

// WithCorrelationID returns a context carrying the id that correlates all events appended while serving one request.
func WithCorrelationID(ctx context.Context, correlationID uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// CorrelationIDFrom returns the correlation id of the context, or a new one if there is none.
func CorrelationIDFrom(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(correlationKey{}).(uuid.UUID); ok {
		return id
	}

	return uuid.New()
}

// EventMetadataFor builds the metadata for an event caused by the request in ctx.
// The request is both the cause and the correlation of the event.
func EventMetadataFor(ctx context.Context) EventMetadata {
	correlationID := CorrelationIDFrom(ctx)

	return BuildEventMetadata(uuid.New(), correlationID, correlationID)
}
