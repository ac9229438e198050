// Package mailer is the SMTP transport behind the email service.
package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/automaten-pro/automaten-api/internal/application/email"
)

// Config SMTP connection options.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// GomailSender implements email.Sender over SMTP.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender builds the sender.
func NewGomailSender(cfg Config) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers one HTML email. Each call dials a fresh connection; volume is
// a handful of mails per day.
func (s *GomailSender) Send(to, subject, htmlBody string, attachments []email.Attachment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	for _, a := range attachments {
		content := a.Content
		m.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
