package service

import "time"

// ResetToken is the ephemeral result of issuing a password reset. The raw
// Secret is handed to the caller exactly once for link construction and is
// never persisted; only the Fingerprint is stored.
type ResetToken struct {
	Secret      string
	Fingerprint string
	ExpiresAt   time.Time
}

// ResetTokenCodec generates reset secrets and derives the storable
// fingerprint. Unlike password hashing, the fingerprint derivation must be
// deterministic so the stored value can be looked up by equality.
type ResetTokenCodec interface {
	// Issue draws a fresh high-entropy secret and returns it together
	// with its fingerprint and absolute expiry.
	Issue() (*ResetToken, error)

	// FingerprintOf maps an incoming secret to the stored fingerprint.
	FingerprintOf(secret string) string

	// TTL returns the configured validity window for issued tokens.
	TTL() time.Duration
}
