package auth

import (
	"time"

	"whereto/config"
	"whereto/internal/domain/entity"
	domainerrors "whereto/internal/domain/errors"
	"whereto/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     string
	sessionTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session token secret must be provided")
	}

	ttl := config.DefaultSessionTokenTTL
	if cfg.Auth != nil && cfg.Auth.SessionTokenTTL > 0 {
		ttl = cfg.Auth.SessionTokenTTL
	}

	return &jwtService{
		secret:     cfg.SecretKey.Session,
		sessionTTL: ttl,
	}, nil
}

// GenerateSessionToken signs an HS256 session token for the claim.
func (s *jwtService) GenerateSessionToken(claim *entity.IdentityClaim) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   claim.ID.String(),
		"email": claim.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// ValidateSessionToken parses and verifies a session token string.
func (s *jwtService) ValidateSessionToken(tokenString string) (*service.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrSessionTokenInvalid.WrapMessage("session token validation failed")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrSessionTokenInvalid.WrapMessage("unexpected claims type")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, domainerrors.ErrSessionTokenInvalid.WrapMessage("subject missing from token")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domainerrors.ErrSessionTokenInvalid.WrapMessage("invalid subject format")
	}

	email, _ := mapClaims["email"].(string)

	return &service.SessionClaims{
		UserID: userID,
		Email:  email,
	}, nil
}

// SessionTokenDuration returns the configured session token lifetime.
func (s *jwtService) SessionTokenDuration() time.Duration {
	return s.sessionTTL
}
