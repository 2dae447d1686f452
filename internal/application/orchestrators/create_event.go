package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"treetroopers/internal/adapters/email"
	"treetroopers/internal/domain/calendar"
	"treetroopers/internal/domain/eventdate"
)

// EventStoreForCreate defines the store interface needed by CreateEvent.
type EventStoreForCreate interface {
	Create(ctx context.Context, e calendar.Event) (calendar.Event, error)
}

// CreateEventInput carries input for the create-event orchestrator.
type CreateEventInput struct {
	Title       string
	EventDate   string
	Location    string
	Description string
}

// CreateEventDeps holds dependencies for CreateEvent.
// Sender and AnnounceTo are optional; without both no announcement is sent.
type CreateEventDeps struct {
	EventStore EventStoreForCreate
	Sender     email.Sender
	AnnounceTo string
	Location   *time.Location
}

// ExecuteCreateEvent validates and stores a new event, then sends a
// best-effort announcement.
// PRE: deps.EventStore is non-nil
// POST: Returns the stored event with its id; announcement failure never fails the call
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (calendar.Event, error) {
	ev := calendar.Event{
		Title:       input.Title,
		EventDate:   input.EventDate,
		Location:    input.Location,
		Description: input.Description,
	}
	if err := ev.Validate(); err != nil {
		return calendar.Event{}, err
	}

	created, err := deps.EventStore.Create(ctx, ev)
	if err != nil {
		return calendar.Event{}, err
	}
	slog.Info("event_event", "event", "event_created", "id", created.ID, "event_date", created.EventDate)

	announce(ctx, created, deps)
	return created, nil
}

func announce(ctx context.Context, ev calendar.Event, deps CreateEventDeps) {
	to := strings.TrimSpace(deps.AnnounceTo)
	if deps.Sender == nil || to == "" {
		return
	}
	msg, err := email.AnnouncementMessage(to, email.Announcement{
		Title:       ev.Title,
		When:        eventdate.Display(ev.EventDate, deps.Location),
		Location:    ev.Location,
		Description: ev.Description,
	})
	if err == nil {
		_, err = deps.Sender.Send(ctx, msg)
	}
	if err != nil {
		slog.Warn("event_event", "event", "announcement_failed", "id", ev.ID, "error", err)
		return
	}
	slog.Info("event_event", "event", "announcement_sent", "id", ev.ID, "to", to)
}
