package cache

import (
	"context"
	"log/slog"

	"github.com/apontae/timesheet-management/internal/core/events"
)

// mutationEvents are every event type that changes a time entry. Each one
// drops all three derived views, unconditionally, regardless of which single
// action triggered the mutation.
var mutationEvents = []string{
	events.TimeEntryUpdatedEvent,
	events.TimeEntrySubmittedEvent,
	events.TimeEntryApprovedEvent,
	events.TimeEntryReturnedEvent,
	events.TimeEntryDeletedEvent,
}

var derivedKeys = []Key{KeyPendingByWeek, KeyPending, KeyValidationCount}

// CountInvalidator drops count samples that are cached outside the query
// store but derive from the same mutating events.
type CountInvalidator interface {
	Invalidate()
}

// SubscribeInvalidation wires the query cache to the event bus so that every
// time entry mutation forces dependent aggregations, the validation count
// included, to recompute from fresh data.
func SubscribeInvalidation(bus *events.EventBus, store Store, counts CountInvalidator, logger *slog.Logger) {
	handler := func(ctx context.Context, event events.Event) error {
		for _, key := range derivedKeys {
			removed := store.Invalidate(key)
			logger.Debug("query cache invalidated",
				"key", string(key),
				"removed", removed,
				"event_type", event.EventType())
		}
		if counts != nil {
			counts.Invalidate()
		}
		return nil
	}

	for _, eventType := range mutationEvents {
		bus.Subscribe(eventType, handler)
	}
}
