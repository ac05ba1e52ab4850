package mailer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"whereto/config"
	"whereto/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResetLinkBuilder_BuildResetURL(t *testing.T) {
	cfg := &config.Config{
		App: &config.AppConfig{BaseURL: "https://whereto.example.com/"},
	}
	builder := NewResetLinkBuilder(cfg)

	got := builder.BuildResetURL("abc123")
	assert.Equal(t, "https://whereto.example.com/auth/reset-password?token=abc123", got)
}

func TestResetLinkBuilder_EscapesSecret(t *testing.T) {
	builder := NewResetLinkBuilder(nil)

	got := builder.BuildResetURL("a b&c")
	assert.Equal(t, "http://localhost:3000/auth/reset-password?token=a+b%26c", got)
}

func TestNewNotifier_DefaultsToLog(t *testing.T) {
	notifier, err := NewNotifier(&config.Config{}, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, notifier)

	// The log notifier never fails to deliver.
	assert.NoError(t, notifier.SendPasswordResetLink(context.Background(), "alice@example.com", "https://example.com/reset"))
}

func TestNewNotifier_SMTPRequiresHostAndFrom(t *testing.T) {
	cfg := &config.Config{
		Mailer: &config.MailerConfig{Provider: constants.MailerProviderSMTP},
	}
	_, err := NewNotifier(cfg, discardLogger())
	assert.Error(t, err)

	cfg.Mailer.Host = "smtp.example.com"
	_, err = NewNotifier(cfg, discardLogger())
	assert.Error(t, err)
}

func TestNewNotifier_UnknownProvider(t *testing.T) {
	cfg := &config.Config{
		Mailer: &config.MailerConfig{Provider: "carrier-pigeon"},
	}
	_, err := NewNotifier(cfg, discardLogger())
	assert.Error(t, err)
}
