package mailrelay

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/config"
)

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP delivers messages directly to the owner's inbox.
type SMTP struct {
	cfg      config.SMTP
	to       string
	sendMail SendMailFunc
}

// NewSMTP returns an SMTP relay sending to the given inbox. An empty inbox
// falls back to the SMTP user.
func NewSMTP(cfg config.SMTP, to string) *SMTP {
	if to == "" {
		to = cfg.User
	}
	return &SMTP{cfg: cfg, to: to, sendMail: smtp.SendMail}
}

func (s *SMTP) Name() string { return config.RelaySMTP }

// Send composes and delivers msg. smtp.SendMail has no context support; ctx is
// only checked before dialing.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if s.cfg.User == "" || s.cfg.Pass == "" || s.to == "" {
		return fmt.Errorf("smtp: %w", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := s.sendMail(addr, auth, s.cfg.User, []string{s.to}, s.compose(msg)); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}

func (s *SMTP) compose(msg Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	return []byte("To: " + s.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so form input cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
