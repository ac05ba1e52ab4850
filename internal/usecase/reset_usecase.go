// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
)

// IssueResetInput carries the email an account claims to own.
type IssueResetInput struct {
	Email string
}

// IssueResetOutput confirms a reset was started. When no account matches
// the email, Issue returns ErrUserNotFound instead and the caller presents
// the same response either way.
type IssueResetOutput struct {
	Issued bool
}

// ConsumeResetInput carries the one-time secret from the reset link and the
// replacement password.
type ConsumeResetInput struct {
	Token       string
	NewPassword string
}

// PasswordResetUsecase defines the interface for the password-reset lifecycle:
// issuing a single-use token, consuming it, and cancelling a pending reset.
type PasswordResetUsecase interface {
	Issue(ctx context.Context, input *IssueResetInput) (*IssueResetOutput, error)
	Consume(ctx context.Context, input *ConsumeResetInput) error
	Cancel(ctx context.Context, email string) error
}
