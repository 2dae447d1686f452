package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Lockout and length limits.
const (
	MaxEmailLength    = 254
	MinPasswordLength = 12
	MaxFailedLogins   = 5
	LockoutDuration   = 15 * time.Minute
	bcryptCost        = 12
)

// Domain errors
var (
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmailTooLong     = errors.New("email cannot exceed 254 characters")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Developer is the single account allowed to enter editing mode on the site.
type Developer struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	FailedLogins int
	LockedUntil  time.Time
}

// Validate checks if the Developer has valid data.
// PRE: Developer struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Developer) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ErrEmptyEmail
	}
	if len(d.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(d.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (d *Developer) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	d.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// INVARIANT: Developer fields are not mutated
func (d *Developer) CheckPassword(plaintext string) error {
	if d.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked reports whether the account is locked out at now.
func (d *Developer) IsLocked(now time.Time) bool {
	return !d.LockedUntil.IsZero() && now.Before(d.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the account
// after MaxFailedLogins failures.
// POST: FailedLogins incremented; LockedUntil set if the threshold is reached
func (d *Developer) RecordFailedLogin(now time.Time) {
	d.FailedLogins++
	if d.FailedLogins >= MaxFailedLogins {
		d.LockedUntil = now.Add(LockoutDuration)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// POST: FailedLogins is 0, LockedUntil is zero
func (d *Developer) ResetFailedLogins() {
	d.FailedLogins = 0
	d.LockedUntil = time.Time{}
}
