package notify

import (
	"fmt"
	"strconv"

	"github.com/readstack/backend/pkg/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends a plain-text email
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through the configured SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a mailer from config. With no SMTP host configured it
// returns a disabled mailer that drops everything, so callers never branch.
func NewMailer(cfg *config.Config) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return disabledMailer{}, nil
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %v", err)
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass),
		from:   from,
	}, nil
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

type disabledMailer struct{}

func (disabledMailer) Send(string, string, string) error { return nil }
