package service

import "context"

// Notifier dispatches outbound account email. Failure to deliver a reset
// link triggers a rollback of the pending reset in the calling service.
type Notifier interface {
	// SendPasswordResetLink delivers the reset URL to the given address.
	SendPasswordResetLink(ctx context.Context, email, resetURL string) error
}

// ResetLinkBuilder turns a raw reset secret into the user-facing URL. The
// core never interprets the URL; its shape belongs to the boundary and is
// configured at process start.
type ResetLinkBuilder interface {
	BuildResetURL(secret string) string
}
