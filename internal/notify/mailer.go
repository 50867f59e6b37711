package notify

import (
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gatherly/events-api/internal/core/ports"
)

// Mailer delivers a single message. Implementations must be safe for
// concurrent use by the dispatcher workers.
type Mailer interface {
	Send(m ports.Mail) error
}

// SMTPConfig carries the settings for the SMTP mailer. When Enabled is
// false, sends are logged and dropped (local/test mode).
type SMTPConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	Enabled bool
}

// SMTPMailer sends plain-text mail over SMTP with PLAIN auth.
type SMTPMailer struct {
	cfg SMTPConfig
	log zerolog.Logger
}

func NewSMTPMailer(cfg SMTPConfig, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log.With().Str("component", "mailer").Logger()}
}

func (s *SMTPMailer) Send(m ports.Mail) error {
	if err := validateAddress(m.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	if !s.cfg.Enabled || s.cfg.Host == "" {
		s.log.Debug().Str("to", m.To).Str("subject", m.Subject).Msg("email disabled, dropping message")
		return nil
	}

	msg := buildMessage(s.cfg.From, m)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{m.To}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	s.log.Info().Str("to", m.To).Str("subject", m.Subject).Msg("email sent")
	return nil
}

// validateAddress rejects malformed addresses and header-injection attempts.
func validateAddress(address string) error {
	addr, err := mail.ParseAddress(address)
	if err != nil {
		return err
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("address contains newline characters")
	}
	return nil
}

func buildMessage(from string, m ports.Mail) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(m.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}

func sanitizeHeader(v string) string {
	v = strings.ReplaceAll(v, "\r", " ")
	return strings.ReplaceAll(v, "\n", " ")
}
