// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"whereto/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when no credential
// record matches the lookup key.
var ErrUserNotFound = errors.New("user not found")

// CredentialStore defines the operations for credential-record persistence.
// The store provides per-record atomic read/write; no cross-request locking
// exists above it, so concurrent writers follow last-write-wins.
//
// Pending-reset state is mutated only through the explicit commands below,
// which update hash and reset fields in a single statement. That keeps the
// pair invariant — fingerprint and expiry present together or not at all —
// enforceable at the storage layer rather than in caller discipline.
type CredentialStore interface {
	// FindByID retrieves a single record by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single record by email, compared as stored.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByResetFingerprint retrieves the record holding the given
	// pending-reset fingerprint, if any.
	FindByResetFingerprint(ctx context.Context, fingerprint string) (*entity.User, error)

	// Create persists a new record. The store enforces email uniqueness.
	Create(ctx context.Context, user *entity.User) error

	// UpdateProfile modifies name, email and avatar of an existing record.
	// It never touches the password hash or the reset pair.
	UpdateProfile(ctx context.Context, user *entity.User) error

	// SetPendingReset records a reset fingerprint and expiry on the user,
	// overwriting any previous pending reset (last writer wins).
	SetPendingReset(ctx context.Context, id uuid.UUID, fingerprint string, expiry time.Time) error

	// ClearPendingReset removes the fingerprint/expiry pair in one
	// statement. Clearing an already-clear record is a no-op.
	ClearPendingReset(ctx context.Context, id uuid.UUID) error

	// ResetPassword sets the new password hash and clears the reset pair
	// in a single statement, so no state is observable where one changed
	// without the other.
	ResetPassword(ctx context.Context, id uuid.UUID, newPasswordHash string) error
}
