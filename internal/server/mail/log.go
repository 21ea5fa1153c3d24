package mail

import (
	"context"

	"github.com/akimovdo/accountd/internal/logging"
)

// LogSender writes verification codes to the log instead of sending email.
// Used in development when no SMTP relay is configured.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger.With("module", "mail")}
}

func (s *LogSender) Send(ctx context.Context, email string, verificationCode string) error {
	s.logger.Info(ctx, "verification code issued", "email", email, "code", verificationCode)
	return nil
}
