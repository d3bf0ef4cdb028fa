// Package notifier emails run summaries after unattended runs.
package notifier

import (
	"fmt"

	"tubeboost/internal/config"
	"tubeboost/internal/notifier/providers"
)

// Notifier handles sending run notifications
type Notifier struct {
	sender Sender
	toAddr string
}

// Sender defines the interface for email sending
type Sender interface {
	Send(to, subject, body string) error
}

// New creates a new notifier with the given sender
func New(sender Sender, toAddr string) *Notifier {
	return &Notifier{sender: sender, toAddr: toAddr}
}

// NewFromConfig creates a notifier based on configuration
func NewFromConfig(cfg config.EmailConfig) (*Notifier, error) {
	var sender Sender

	switch cfg.Provider {
	case "smtp":
		sender = providers.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPass,
			cfg.FromAddr,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}

	return New(sender, cfg.ToAddr), nil
}

// SendRunSummary sends a plain text summary of a finished run
func (n *Notifier) SendRunSummary(summary string) error {
	return n.sender.Send(n.toAddr, "tubeboost: support run finished", summary)
}
