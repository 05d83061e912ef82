package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending plain-text mail.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewMailer creates a new Mailer.
func NewMailer(cfg Config) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
