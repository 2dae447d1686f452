package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"treetroopers/internal/domain/account"
)

// DeveloperStoreForLogin defines the store interface needed by Login.
type DeveloperStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Developer, error)
	Save(ctx context.Context, d account.Developer) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	DeveloperID string
	Email       string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	DeveloperStore DeveloperStoreForLogin
	Now            func() time.Time // defaults to time.Now
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates developer credentials.
// PRE: none
// POST: Returns developer info on success; records the failure otherwise
// INVARIANT: a locked account is rejected before the password is checked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	emailAddr := strings.TrimSpace(input.Email)
	if emailAddr == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	dev, err := deps.DeveloperStore.GetByEmail(ctx, emailAddr)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", emailAddr, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if dev.IsLocked(now()) {
		slog.Info("auth_event", "event", "login_blocked", "email", emailAddr, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := dev.CheckPassword(input.Password); err != nil {
		dev.RecordFailedLogin(now())
		if err := deps.DeveloperStore.Save(ctx, dev); err != nil {
			slog.Warn("auth_event", "event", "failed_login_not_recorded", "email", emailAddr, "error", err)
		}
		slog.Info("auth_event", "event", "login_failed", "email", emailAddr, "reason", "wrong_password", "failed_logins", dev.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	if dev.FailedLogins > 0 || !dev.LockedUntil.IsZero() {
		dev.ResetFailedLogins()
		_ = deps.DeveloperStore.Save(ctx, dev)
	}
	slog.Info("auth_event", "event", "login_success", "email", emailAddr)
	return LoginResult{DeveloperID: dev.ID, Email: dev.Email}, nil
}
