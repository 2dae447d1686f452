package calendar

import "errors"

// Max length constants.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxLocationLength    = 200
)

// Domain errors
var (
	ErrMissingTitleOrDate = errors.New("missing title or event_date")
	ErrTitleTooLong       = errors.New("event title cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("event description cannot exceed 2000 characters")
	ErrLocationTooLong    = errors.New("event location cannot exceed 200 characters")
)

// Event is a club event stored in the shared events database.
// It is independent of the locally edited events list on the site page.
// INVARIANT: ID is assigned by the database on insert.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	EventDate   string `json:"event_date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	// Presence only: a whitespace title is kept as sent.
	if e.Title == "" || e.EventDate == "" {
		return ErrMissingTitleOrDate
	}
	if len(e.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(e.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(e.Location) > MaxLocationLength {
		return ErrLocationTooLong
	}
	return nil
}
