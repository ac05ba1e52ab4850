package service

import (
	"time"

	"whereto/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims defines the custom claims carried by a session token.
type SessionClaims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and validates session tokens. A session token is the
// opaque identity claim handed to the boundary after authentication; it
// carries no secrets.
type TokenService interface {
	// GenerateSessionToken signs a new session token for the given claim.
	GenerateSessionToken(claim *entity.IdentityClaim) (string, error)

	// ValidateSessionToken checks a token string and returns its claims.
	ValidateSessionToken(tokenString string) (*SessionClaims, error)

	// SessionTokenDuration returns the configured session token lifetime.
	SessionTokenDuration() time.Duration
}
