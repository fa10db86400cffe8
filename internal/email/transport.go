package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single mail message.
type Sender interface {
	Send(m *gomail.Message) error
}

// SenderFactory builds a Sender for the configured provider. It is
// invoked per dispatch, so a misconfigured provider fails the attempt
// rather than the process.
type SenderFactory func() (Sender, error)

type smtpSender struct {
	dialer *gomail.Dialer
}

func (s *smtpSender) Send(m *gomail.Message) error {
	return s.dialer.DialAndSend(m)
}

// newSMTPSender selects host, port and credentials for the configured
// provider. Zoho uses implicit TLS on 465; gomail enables SSL for
// that port on its own.
func newSMTPSender(cfg Config) (Sender, error) {
	var dialer *gomail.Dialer

	switch cfg.Service {
	case ProviderGmail:
		dialer = gomail.NewDialer("smtp.gmail.com", 587, cfg.GmailUser, cfg.GmailPassword)
	case ProviderSendgrid:
		dialer = gomail.NewDialer("smtp.sendgrid.net", 587, "apikey", cfg.SendgridAPIKey)
	case ProviderSES:
		dialer = gomail.NewDialer(cfg.SESHost, 587, cfg.SESUser, cfg.SESPassword)
	case ProviderZoho:
		dialer = gomail.NewDialer(cfg.ZohoHost, 465, cfg.ZohoUser, cfg.ZohoPassword)
	default:
		return nil, fmt.Errorf("invalid email service configured: %q", cfg.Service)
	}

	return &smtpSender{dialer: dialer}, nil
}
