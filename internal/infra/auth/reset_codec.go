package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"whereto/config"
	"whereto/internal/domain/service"

	"github.com/pkg/errors"
)

// resetSecretBytes sizes the raw secret at 32 bytes (256 bits of entropy),
// hex-encoded to 64 characters in the reset link.
const resetSecretBytes = 32

// resetTokenCodec derives reset-token fingerprints with SHA-256. The
// derivation is deterministic so the stored fingerprint can be found by an
// indexed equality lookup; the secret itself is never stored.
type resetTokenCodec struct {
	ttl time.Duration
	now func() time.Time
}

// NewResetTokenCodec is the constructor for resetTokenCodec.
func NewResetTokenCodec(cfg *config.Config) service.ResetTokenCodec {
	ttl := config.DefaultResetTokenTTL
	if cfg != nil && cfg.Auth != nil && cfg.Auth.ResetTokenTTL > 0 {
		ttl = cfg.Auth.ResetTokenTTL
	}

	return &resetTokenCodec{ttl: ttl, now: time.Now}
}

// Issue draws a fresh secret from the CSPRNG and returns it with its
// fingerprint and expiry. A read error from the entropy source is fatal for
// the operation and propagates unchanged.
func (c *resetTokenCodec) Issue() (*service.ResetToken, error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to draw reset token entropy")
	}

	secret := hex.EncodeToString(buf)

	return &service.ResetToken{
		Secret:      secret,
		Fingerprint: c.FingerprintOf(secret),
		ExpiresAt:   c.now().Add(c.ttl),
	}, nil
}

// FingerprintOf maps a secret to its stored fingerprint.
func (c *resetTokenCodec) FingerprintOf(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:])
}

// TTL returns the validity window applied at issuance.
func (c *resetTokenCodec) TTL() time.Duration {
	return c.ttl
}
