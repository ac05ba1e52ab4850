// Package mailer provides Notifier implementations for outbound account email.
package mailer

import (
	"log/slog"

	"whereto/config"
	"whereto/internal/domain/constants"
	"whereto/internal/domain/service"

	"github.com/pkg/errors"
)

// NewNotifier creates a Notifier based on configuration. Without mailer
// config the log notifier is used, mirroring development setups where the
// reset link is read from the process log instead of a mailbox.
func NewNotifier(cfg *config.Config, logger *slog.Logger) (service.Notifier, error) {
	if cfg.Mailer == nil || cfg.Mailer.Provider == "" || cfg.Mailer.Provider == constants.MailerProviderLog {
		logger.Info("Mailer not configured, using log notifier")

		return NewLogNotifier(logger), nil
	}

	switch cfg.Mailer.Provider {
	case constants.MailerProviderSMTP:
		if cfg.Mailer.Host == "" {
			return nil, errors.New("smtp host is required for smtp provider")
		}
		if cfg.Mailer.From == "" {
			return nil, errors.New("sender address is required for smtp provider")
		}
		logger.Info("Using SMTP notifier",
			slog.String("host", cfg.Mailer.Host),
			slog.String("from", cfg.Mailer.From),
		)

		return NewSMTPNotifier(cfg.Mailer, logger)

	default:
		return nil, errors.Errorf("unknown mailer provider: %s", cfg.Mailer.Provider)
	}
}
