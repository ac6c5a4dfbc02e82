package mail

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogSender writes messages to the logger instead of delivering them.
type LogSender struct {
	logger logrus.FieldLogger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger logrus.FieldLogger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message and returns a generated id.
func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	if err := validateMessage(msg); err != nil {
		return "", err
	}

	id := "log-" + uuid.NewString()
	s.logger.WithFields(logrus.Fields{
		"message_id": id,
		"to":         msg.To,
		"subject":    msg.Subject,
	}).Info("email logged (not delivered)")
	s.logger.WithField("message_id", id).Debug(msg.Text)
	return id, nil
}
