package calendar_test

import (
	"context"
	"os"
	"testing"

	"treetroopers/internal/adapters/storage/calendar"
	domain "treetroopers/internal/domain/calendar"
)

// TestPostgresStore runs against a real database when CLUB_TEST_DATABASE_URL is set.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("CLUB_TEST_DATABASE_URL")
	if url == "" || testing.Short() {
		t.Skip("CLUB_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := calendar.OpenPostgres(ctx, url)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	defer pool.Close()

	s := calendar.NewPostgresStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	created, err := s.Create(ctx, domain.Event{Title: "Beach Cleanup", EventDate: "2026-03-12", Location: "Santa Monica"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.EventDate != "2026-03-12" {
		t.Errorf("Create() = %+v", created)
	}
	t.Cleanup(func() { pool.Exec(ctx, "DELETE FROM events WHERE id = $1", created.ID) })

	events, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) == 0 || events[0].ID != created.ID {
		t.Errorf("List()[0] = %+v, want id %d", events, created.ID)
	}
}
