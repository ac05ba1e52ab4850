// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Two calls
	// with the same plaintext produce different outputs.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash in constant time.
	// A malformed hash reports false rather than an error, so callers
	// cannot distinguish "bad hash" from "wrong password".
	Check(password, hash string) bool

	// ValidateStrength reports whether a plaintext meets the minimum
	// password requirements.
	ValidateStrength(password string) error
}
