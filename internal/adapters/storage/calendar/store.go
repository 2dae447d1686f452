package calendar

import (
	"context"

	domain "treetroopers/internal/domain/calendar"
)

// Store persists club events.
type Store interface {
	// List returns every event, newest id first.
	List(ctx context.Context) ([]domain.Event, error)
	// Create inserts an event and returns the stored row with its new id.
	Create(ctx context.Context, e domain.Event) (domain.Event, error)
}
