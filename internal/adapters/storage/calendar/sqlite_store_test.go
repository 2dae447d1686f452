package calendar_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"treetroopers/internal/adapters/storage"
	"treetroopers/internal/adapters/storage/calendar"
	domain "treetroopers/internal/domain/calendar"
)

func newSQLiteStore(t *testing.T) *calendar.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return calendar.NewSQLiteStore(db)
}

func TestSQLiteStore_ListEmpty(t *testing.T) {
	s := newSQLiteStore(t)
	events, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", events)
	}
}

func TestSQLiteStore_CreateThenListNewestFirst(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, domain.Event{Title: "Beach Cleanup", EventDate: "2026-03-12"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == 0 || first.Location != "" || first.Description != "" {
		t.Errorf("Create() = %+v", first)
	}
	second, err := s.Create(ctx, domain.Event{Title: "Tree Planting", EventDate: "2026-04-20", Location: "Griffith Park", Description: "Bring water"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("ids not increasing: %d then %d", first.ID, second.ID)
	}

	events, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0] != second || events[1] != first {
		t.Errorf("List() = %+v, want newest first", events)
	}
}

func TestSQLiteStore_DateStoredVerbatim(t *testing.T) {
	s := newSQLiteStore(t)
	got, err := s.Create(context.Background(), domain.Event{Title: "x", EventDate: "next tuesday"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.EventDate != "next tuesday" {
		t.Errorf("EventDate = %q", got.EventDate)
	}
}
