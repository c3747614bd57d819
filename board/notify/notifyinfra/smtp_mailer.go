package notifyinfra

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/easilyhq/easily/board/notify"
	"github.com/easilyhq/easily/pkg/errx"
)

// SMTPConfig holds SMTP relay settings from the environment
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer delivers emails over an SMTP relay
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates an SMTP-backed mailer
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one email
func (m *SMTPMailer) Send(ctx context.Context, email *notify.ApplicationEmail) error {
	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, email)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To.String()}, msg); err != nil {
		return errx.Wrap(err, fmt.Sprintf("smtp send to %s", email.To), errx.TypeInternal)
	}
	return nil
}

func buildMessage(from string, email *notify.ApplicationEmail) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(email.Body())
	return []byte(b.String())
}

var _ notify.Mailer = (*SMTPMailer)(nil)
