package account

import (
	"context"
	"errors"

	domain "treetroopers/internal/domain/account"
)

// ErrNotFound is returned when no developer account matches.
var ErrNotFound = errors.New("developer account not found")

// Store persists developer accounts.
type Store interface {
	GetByEmail(ctx context.Context, email string) (domain.Developer, error)
	Save(ctx context.Context, d domain.Developer) error
	Count(ctx context.Context) (int, error)
}
