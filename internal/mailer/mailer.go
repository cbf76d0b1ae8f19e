package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer delivers a confirmation code to an address. Fire-once: the caller
// gets a bounded success/failure result, retries belong to the transport.
type Mailer interface {
	SendConfirmationCode(email, code string) error
}

// smtpMailer sends the code over plain SMTP.
type smtpMailer struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates a Mailer backed by the SMTP server at addr.
func NewSMTPMailer(addr, from, username, password string) Mailer {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &smtpMailer{addr: addr, from: from, auth: auth}
}

func (m *smtpMailer) SendConfirmationCode(email, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Registration\r\n\r\nYour code: %s\r\n",
		m.from, email, code)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to deliver confirmation code: %w", err)
	}
	return nil
}

// logMailer is the development delivery channel: the log line is how the
// code reaches the user when no SMTP server is configured.
type logMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) SendConfirmationCode(email, code string) error {
	m.logger.Info("confirmation_code_delivery", "email", email, "code", code)
	return nil
}
