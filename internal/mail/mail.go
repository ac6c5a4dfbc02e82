// Package mail renders candidate and staff notifications and delivers them
// through a configurable transport.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a message and returns the transport's message id, if any.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// NewSender returns the transport selected by cfg.Provider.
func NewSender(cfg config.MailConfig, logger logrus.FieldLogger) (Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.MailSMTP:
		return NewSMTPSender(cfg), nil
	case config.MailMailgun:
		return NewMailgunSender(cfg), nil
	case config.MailSendGrid:
		return NewSendGridSender(cfg), nil
	case config.MailLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("create mail sender failed: unknown provider %q", cfg.Provider)
	}
}

// validateMessage checks the fields every transport needs.
func validateMessage(msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("mail: recipient is empty")
	}
	if msg.Subject == "" {
		return fmt.Errorf("mail: subject is empty")
	}
	if msg.HTML == "" && msg.Text == "" {
		return fmt.Errorf("mail: body is empty")
	}
	return nil
}

// formatFrom renders a "Name <address>" sender.
func formatFrom(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
