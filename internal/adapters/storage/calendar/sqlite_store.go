package calendar

import (
	"context"

	"treetroopers/internal/adapters/storage"
	domain "treetroopers/internal/domain/calendar"
)

// SQLiteStore implements Store using the local events table.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns all events ordered by id descending.
// PRE: schema is migrated
// POST: Returns an empty (non-nil) slice when there are no events
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, event_date, location, description FROM events ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Create inserts e and returns the stored row.
// PRE: e has been validated
// POST: Returned event carries the database-assigned id
func (s *SQLiteStore) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"INSERT INTO events (title, event_date, location, description) VALUES (?, ?, ?, ?) RETURNING id, title, event_date, location, description",
		e.Title, e.EventDate, e.Location, e.Description,
	)
	return scanEvent(row.Scan)
}

// scanEvent extracts an Event from a row scanner function.
func scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var e domain.Event
	if err := scan(&e.ID, &e.Title, &e.EventDate, &e.Location, &e.Description); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}
