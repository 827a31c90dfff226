package email

import (
	c "authsvc/internal/core/domain/common"
	"authsvc/internal/core/domain/logging"
	"context"
)

// LogSender writes password reset links to the log instead of sending them.
// Only meant for local development.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendPasswordResetLink(ctx context.Context, email c.Email, link string) error {
	s.log.Warning(
		ctx,
		"Password reset link is not delivered, logging it instead.",
		logging.Entry("email", email),
		logging.Entry("link", link),
	)
	return nil
}
