package mailer

import (
	"net/url"
	"strings"

	"whereto/config"
	"whereto/internal/domain/service"
)

// resetLinkBuilder builds the user-facing reset URL from the configured
// public base URL. The raw secret travels only inside this link.
type resetLinkBuilder struct {
	baseURL string
}

// NewResetLinkBuilder is the constructor for resetLinkBuilder.
func NewResetLinkBuilder(cfg *config.Config) service.ResetLinkBuilder {
	baseURL := "http://localhost:3000"
	if cfg != nil && cfg.App != nil && cfg.App.BaseURL != "" {
		baseURL = strings.TrimRight(cfg.App.BaseURL, "/")
	}

	return &resetLinkBuilder{baseURL: baseURL}
}

// BuildResetURL returns the reset-password page URL carrying the secret.
func (b *resetLinkBuilder) BuildResetURL(secret string) string {
	return b.baseURL + "/auth/reset-password?token=" + url.QueryEscape(secret)
}
