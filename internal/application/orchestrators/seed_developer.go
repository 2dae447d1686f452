package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	accountStore "treetroopers/internal/adapters/storage/account"
	"treetroopers/internal/domain/account"
)

// DeveloperStore defines the store interface needed to seed developer accounts.
type DeveloperStore interface {
	GetByEmail(ctx context.Context, email string) (account.Developer, error)
	Save(ctx context.Context, d account.Developer) error
	Count(ctx context.Context) (int, error)
}

// DeveloperDeps holds dependencies for the developer account orchestrators.
type DeveloperDeps struct {
	DeveloperStore DeveloperStore
}

// ExecuteSeedDeveloper creates the first developer account when none exists.
// Nothing happens when email or password is empty.
// PRE: deps.DeveloperStore is non-nil
// POST: at most one account is created; existing accounts are never touched
func ExecuteSeedDeveloper(ctx context.Context, deps DeveloperDeps, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	n, err := deps.DeveloperStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := ExecuteSetDeveloperPassword(ctx, deps, email, password); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "developer_seeded", "email", email)
	return nil
}

// ExecuteSetDeveloperPassword creates the developer account for email, or
// resets its password and lockout when it already exists.
// PRE: password is at least 12 characters
// POST: Returns the saved account
func ExecuteSetDeveloperPassword(ctx context.Context, deps DeveloperDeps, email, password string) (account.Developer, error) {
	dev, err := deps.DeveloperStore.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, accountStore.ErrNotFound):
		dev = account.Developer{ID: uuid.NewString(), Email: email, CreatedAt: time.Now()}
	case err != nil:
		return account.Developer{}, err
	}

	if err := dev.Validate(); err != nil {
		return account.Developer{}, err
	}
	if err := dev.SetPassword(password); err != nil {
		return account.Developer{}, err
	}
	dev.ResetFailedLogins()
	if err := deps.DeveloperStore.Save(ctx, dev); err != nil {
		return account.Developer{}, err
	}
	slog.Info("auth_event", "event", "developer_password_set", "email", dev.Email)
	return dev, nil
}
