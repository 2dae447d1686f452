package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"treetroopers/internal/adapters/storage"
	domain "treetroopers/internal/domain/account"
)

const timeLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByEmail retrieves a developer by email, case-insensitively.
// PRE: email is non-empty
// POST: Returns the developer or ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Developer, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at, failed_logins, locked_until FROM developer WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	)
	var d domain.Developer
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(&d.ID, &d.Email, &d.PasswordHash, &createdAt, &d.FailedLogins, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Developer{}, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	if err != nil {
		return domain.Developer{}, err
	}
	d.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	if lockedUntil.Valid && lockedUntil.String != "" {
		d.LockedUntil, _ = time.Parse(timeLayout, lockedUntil.String)
	}
	return d, nil
}

// Save inserts or updates a developer keyed by id.
// PRE: d has been validated
// POST: Developer is persisted; email is stored lower-cased
func (s *SQLiteStore) Save(ctx context.Context, d domain.Developer) error {
	var lockedUntil any
	if !d.LockedUntil.IsZero() {
		lockedUntil = d.LockedUntil.UTC().Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO developer (id, email, password_hash, created_at, failed_logins, locked_until)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			password_hash=excluded.password_hash,
			failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until`,
		d.ID,
		strings.ToLower(strings.TrimSpace(d.Email)),
		d.PasswordHash,
		d.CreatedAt.UTC().Format(timeLayout),
		d.FailedLogins,
		lockedUntil,
	)
	return err
}

// Count returns the number of developer accounts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM developer").Scan(&n)
	return n, err
}
