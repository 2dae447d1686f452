package projections

import (
	"context"

	"treetroopers/internal/domain/calendar"
)

// EventStore interface for event queries.
type EventStore interface {
	List(ctx context.Context) ([]calendar.Event, error)
}

// ListEventsDeps holds dependencies for ListEvents.
type ListEventsDeps struct {
	EventStore EventStore
}

// QueryListEvents returns every stored event, newest id first.
// PRE: deps.EventStore is non-nil
// POST: Returns a non-nil slice on success
func QueryListEvents(ctx context.Context, deps ListEventsDeps) ([]calendar.Event, error) {
	events, err := deps.EventStore.List(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []calendar.Event{}
	}
	return events, nil
}
