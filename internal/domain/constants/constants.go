// Package constants holds shared domain-level constant values.
package constants

// Pub/Sub provider types.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Mailer provider types.
const (
	MailerProviderSMTP = "smtp"
	MailerProviderLog  = "log"
)
