package careers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/mail"
)

// NotifyResult reports the outcome of a best-effort notification.
type NotifyResult struct {
	Attempted bool
	Sent      bool
	MessageID string
	Err       error
}

// Notifier sends mail without ever failing the caller's operation.
type Notifier struct {
	sender mail.Sender
	logger logrus.FieldLogger
}

// NewNotifier wraps sender.
func NewNotifier(sender mail.Sender, logger logrus.FieldLogger) *Notifier {
	return &Notifier{sender: sender, logger: logger}
}

// Notify sends msg and logs the outcome with fields.
func (n *Notifier) Notify(ctx context.Context, msg mail.Message, fields logrus.Fields) NotifyResult {
	entry := n.logger.WithFields(fields).WithField("to", msg.To)

	id, err := n.sender.Send(ctx, msg)
	if err != nil {
		entry.WithError(err).Warn("notification failed; operation already committed")
		return NotifyResult{Attempted: true, Err: err}
	}

	entry.WithField("message_id", id).Info("notification sent")
	return NotifyResult{Attempted: true, Sent: true, MessageID: id}
}

// Skip logs a notification that was not attempted.
func (n *Notifier) Skip(reason string, fields logrus.Fields) NotifyResult {
	n.logger.WithFields(fields).Info("notification skipped: " + reason)
	return NotifyResult{}
}
