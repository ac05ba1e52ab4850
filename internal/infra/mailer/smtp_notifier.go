package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"whereto/config"
	"whereto/internal/domain/service"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

const resetSubject = "Reset your WhereTo password"

// smtpNotifier delivers account email over SMTP using go-mail.
type smtpNotifier struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPNotifier is the constructor for smtpNotifier.
func NewSMTPNotifier(cfg *config.MailerConfig, logger *slog.Logger) (service.Notifier, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	return &smtpNotifier{
		client: client,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// SendPasswordResetLink delivers the reset URL to the given address.
func (n *smtpNotifier) SendPasswordResetLink(ctx context.Context, email, resetURL string) error {
	msg := gomail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(email); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}

	msg.Subject(resetSubject)
	msg.SetBodyString(gomail.TypeTextPlain, resetTextBody(resetURL))
	msg.AddAlternativeString(gomail.TypeTextHTML, resetHTMLBody(resetURL))

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send password reset email")
	}

	n.logger.Info("Password reset email sent", slog.String("email", email))

	return nil
}

func resetTextBody(resetURL string) string {
	return fmt.Sprintf(
		"You requested a password reset for your WhereTo account.\n\n"+
			"Open this link to choose a new password:\n%s\n\n"+
			"The link expires in 1 hour. If you didn't request this reset, you can safely ignore this email.\n",
		resetURL)
}

func resetHTMLBody(resetURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; text-align: center;">Reset Your Password</h2>
  <p style="color: #666; line-height: 1.6;">
    You requested a password reset for your WhereTo account. Click the button below to reset your password:
  </p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="%[1]s" style="background-color: #4f46e5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block; font-weight: bold;">Reset Password</a>
  </div>
  <p style="color: #666; line-height: 1.6;">
    If you didn't request this password reset, you can safely ignore this email. The link will expire in 1 hour.
  </p>
  <p style="color: #666; line-height: 1.6;">
    If the button doesn't work, copy and paste this link into your browser:
  </p>
  <p style="color: #4f46e5; word-break: break-all;">%[1]s</p>
</div>`, resetURL)
}
