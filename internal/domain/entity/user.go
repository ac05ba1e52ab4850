// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the credential record for one account. The email is the login
// identifier; comparisons use it exactly as stored. PasswordHash holds the
// bcrypt digest and never the plaintext.
type User struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // Unique login identifier, compared as stored.
	Name         string    // Display name.
	AvatarURL    string    // Optional avatar reference, may be empty.
	PasswordHash string    // bcrypt digest of the current password.

	// ResetTokenFingerprint and ResetTokenExpiry are both set while a
	// password reset is pending and both nil otherwise. They are only
	// written together, through the credential store's atomic commands.
	ResetTokenFingerprint *string
	ResetTokenExpiry      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPendingReset reports whether a reset token is currently outstanding
// for this account.
func (u *User) HasPendingReset() bool {
	return u.ResetTokenFingerprint != nil && u.ResetTokenExpiry != nil
}

// ResetExpired reports whether the pending reset token, if any, has passed
// its validity window at the given instant.
func (u *User) ResetExpired(now time.Time) bool {
	if u.ResetTokenExpiry == nil {
		return true
	}

	return !u.ResetTokenExpiry.After(now)
}

// Claim derives the non-secret identity attributes returned after a
// successful authentication. The password hash never crosses this boundary.
func (u *User) Claim() *IdentityClaim {
	return &IdentityClaim{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.Name,
		AvatarURL:   u.AvatarURL,
	}
}

// IdentityClaim is the transient, non-secret view of an authenticated user.
type IdentityClaim struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"name"`
	AvatarURL   string    `json:"image,omitempty"`
}
