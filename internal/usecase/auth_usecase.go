// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"whereto/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to register a new account.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// AuthenticateInput defines the data required to verify an email/password pair.
type AuthenticateInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines the mutable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Name      *string
	Email     *string
	AvatarURL *string
}

// --- Output DTOs ---

// CreateAccountOutput returns the newly created account's identity claim.
type CreateAccountOutput struct {
	User *entity.User
}

// AuthenticateOutput returns the identity claim and session token after a
// successful credential check.
type AuthenticateOutput struct {
	Claim        *entity.IdentityClaim
	SessionToken string
}

// AuthUsecase defines the interface for account and credential operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error)
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}
