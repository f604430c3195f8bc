package email

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of sending them. Used in dev
// when SMTP is not configured.
type LogMailer struct {
	lg zerolog.Logger
}

func NewLogMailer(lg zerolog.Logger) *LogMailer {
	return &LogMailer{lg: lg.With().Str("component", "log_mailer").Logger()}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.lg.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("mail not sent (smtp disabled)")
	return nil
}
