package calendar

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "treetroopers/internal/domain/calendar"
)

// pgQuerier is the subset of *pgxpool.Pool the store needs.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgQuerier = (*pgxpool.Pool)(nil)

// PostgresStore implements Store against a shared Postgres events table.
type PostgresStore struct {
	db pgQuerier
}

// NewPostgresStore creates a new PostgresStore over pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

// OpenPostgres connects to databaseURL and verifies the connection.
// PRE: databaseURL is a postgres:// connection string
// POST: Returns a live pool; caller must Close it
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the events table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		event_date DATE NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	)`)
	return err
}

// List returns all events ordered by id descending.
// POST: Returns an empty (non-nil) slice when there are no events
func (s *PostgresStore) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.Query(ctx, "SELECT id, title, event_date::text, location, description FROM events ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Event, error) {
		return scanEvent(row.Scan)
	})
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

// Create inserts e and returns the stored row.
// PRE: e has been validated; EventDate is a date Postgres accepts
// POST: Returned event carries the database-assigned id
func (s *PostgresStore) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	row := s.db.QueryRow(ctx,
		"INSERT INTO events (title, event_date, location, description) VALUES ($1, $2, $3, $4) RETURNING id, title, event_date::text, location, description",
		e.Title, e.EventDate, e.Location, e.Description,
	)
	return scanEvent(row.Scan)
}
