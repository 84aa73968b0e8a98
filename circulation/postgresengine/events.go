package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// AppendEvents writes audit events into the event table of the store, in the same transaction as the state change.
func (t *pgTx) AppendEvents(ctx context.Context, events ...circulation.StorableEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]any, 0, len(events))
	for _, event := range events {
		rows = append(rows, goqu.Record{
			"event_type":  event.EventType,
			"occurred_at": goqu.L("?::timestamptz", event.OccurredAt.UTC().Format(time.RFC3339Nano)),
			"payload":     goqu.L("?::jsonb", string(event.PayloadJSON)),
			"metadata":    goqu.L("?::jsonb", string(event.MetadataJSON)),
		})
	}

	stmt := dialect().Insert(t.store.eventTableName).Rows(rows...)

	if _, err := t.exec(ctx, "append events", stmt); err != nil {
		return err
	}

	t.store.logOperationWithContext(ctx, logMsgEventsAppended, logAttrEventCount, len(events))

	return nil
}

// QueryEvents reads audit events of the given types in append order. No types means all events.
func (t *pgTx) QueryEvents(ctx context.Context, eventTypes ...string) (circulation.StorableEvents, error) {
	stmt := dialect().From(t.store.eventTableName).
		Select(
			goqu.C("sequence_number"),
			goqu.C("event_type"),
			goqu.C("occurred_at"),
			goqu.L(`"payload"::text`),
			goqu.L(`"metadata"::text`),
		).
		Order(goqu.C("sequence_number").Asc())

	if len(eventTypes) > 0 {
		stmt = stmt.Where(goqu.C("event_type").In(eventTypes))
	}

	events := make(circulation.StorableEvents, 0)

	err := t.query(ctx, "query events", stmt, func(row rowScanner) error {
		var event circulation.StorableEvent
		var payload, metadata string

		if scanErr := row.Scan(&event.SequenceNumber, &event.EventType, &event.OccurredAt, &payload, &metadata); scanErr != nil {
			return scanErr
		}

		event.PayloadJSON = []byte(payload)
		event.MetadataJSON = []byte(metadata)
		events = append(events, event)

		return nil
	})

	return events, err
}
