package account_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"treetroopers/internal/adapters/storage"
	"treetroopers/internal/adapters/storage/account"
	domain "treetroopers/internal/domain/account"
)

func newStore(t *testing.T) *account.SQLiteStore {
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
	return account.NewSQLiteStore(db)
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	d := domain.Developer{ID: "dev-1", Email: "Dev@TreeTroopers.org", PasswordHash: "hash", CreatedAt: created}
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.GetByEmail(ctx, "dev@treetroopers.org")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != "dev-1" || got.Email != "dev@treetroopers.org" || !got.CreatedAt.Equal(created) {
		t.Errorf("GetByEmail() = %+v", got)
	}
	if !got.LockedUntil.IsZero() {
		t.Errorf("LockedUntil = %v, want zero", got.LockedUntil)
	}

	n, err := s.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count() = %d, %v", n, err)
	}
}

func TestSQLiteStore_UpdateLockout(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	d := domain.Developer{ID: "dev-1", Email: "dev@treetroopers.org", CreatedAt: time.Now()}
	s.Save(ctx, d)

	locked := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	d.FailedLogins = 5
	d.LockedUntil = locked
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := s.GetByEmail(ctx, d.Email)
	if got.FailedLogins != 5 || !got.LockedUntil.Equal(locked) {
		t.Errorf("got %+v", got)
	}
}

func TestSQLiteStore_NotFound(t *testing.T) {
	s := newStore(t)
	if _, err := s.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, account.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
