package sms

import (
	"context"

	"github.com/AnshRaj112/captionly-backend/internal/logging"
)

// LogSender writes messages to the log instead of sending them. Used in
// development when Twilio credentials are not configured.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, to, body string) error {
	s.log.Warn(ctx, "sms not sent, twilio is not configured", "to", to, "body", body)
	return nil
}
