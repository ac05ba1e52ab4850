package mailer

import (
	"context"
	"log/slog"

	"whereto/internal/domain/service"
)

// logNotifier writes the reset link to the process log instead of sending
// email. Development only: the raw link appears in logs.
type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier is the constructor for logNotifier.
func NewLogNotifier(logger *slog.Logger) service.Notifier {
	return &logNotifier{logger: logger}
}

// SendPasswordResetLink logs the reset link for the operator to relay.
func (n *logNotifier) SendPasswordResetLink(_ context.Context, email, resetURL string) error {
	n.logger.Info("Password reset link (email delivery disabled)",
		slog.String("email", email),
		slog.String("resetUrl", resetURL),
	)

	return nil
}
