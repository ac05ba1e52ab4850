package auth

import (
	"testing"

	"whereto/config"
	domainerrors "whereto/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *bcryptHasher {
	// MinCost keeps the test fast; strength rules are independent of cost.
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        bcrypt.MinCost,
			MinPasswordLength: 6,
		},
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, hasher.Check("password123", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	// Same plaintext, different salts, different digests.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("password123", first))
	assert.True(t, hasher.Check("password123", second))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := newTestHasher()

	// A malformed hash reports false, never an error or a panic.
	assert.False(t, hasher.Check("password123", ""))
	assert.False(t, hasher.Check("password123", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_ValidateStrength(t *testing.T) {
	hasher := newTestHasher()

	assert.NoError(t, hasher.ValidateStrength("123456"))
	assert.NoError(t, hasher.ValidateStrength("a-longer-password"))

	err := hasher.ValidateStrength("12345")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)

	err = hasher.ValidateStrength("")
	assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)
}

func TestBcryptHasher_DefaultsWithoutConfig(t *testing.T) {
	hasher := NewBcryptHasher(nil).(*bcryptHasher)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
	assert.Equal(t, config.DefaultMinPasswordLength, hasher.minLength)
}
