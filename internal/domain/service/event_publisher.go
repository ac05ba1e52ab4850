package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Auth event types published on account lifecycle transitions.
const (
	EventAccountCreated         = "account.created"
	EventPasswordResetRequested = "password.reset.requested"
	EventPasswordResetComplete  = "password.reset.completed"
)

// AuthEvent describes one account lifecycle transition. Events never carry
// secrets: no password, no reset secret, no fingerprint.
type AuthEvent struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
}

// EventPublisher publishes auth events for downstream consumers (audit,
// analytics). Publishing is best-effort: callers log failures and continue.
type EventPublisher interface {
	PublishAuthEvent(ctx context.Context, event *AuthEvent) error

	// Close releases publisher resources.
	Close() error
}
