package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes outbound mail to the log instead of sending it. Used in
// development and tests where no SMTP relay is available.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer creates a mailer that logs messages.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log.With("component", "log_mailer")}
}

// Send logs the message and always succeeds.
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Info("outbound email",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
