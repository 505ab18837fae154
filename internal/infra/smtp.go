package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"posmejia/internal/config"

	"github.com/jordan-wright/email"
)

var ErrMailerDisabled = errors.New("mailer: SMTP_HOST not configured")

// Mailer sends report exports through the configured SMTP relay. Every send
// goes through a circuit breaker so a dead relay fails fast.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	cb       *CircuitBreaker
}

func NewMailer(cfg *config.Config, cb *CircuitBreaker) *Mailer {
	if cb == nil {
		cb = NewCircuitBreaker(DefaultCBConfig())
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       cb,
	}
}

func (m *Mailer) Enabled() bool { return m != nil && m.host != "" }

// Breaker exposes the relay breaker for health checks and the retry cron.
func (m *Mailer) Breaker() *CircuitBreaker { return m.cb }

// SendReporte mails the PDF at pdfPath as an attachment.
func (m *Mailer) SendReporte(to, subject, body, pdfPath string) error {
	if !m.Enabled() {
		return ErrMailerDisabled
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return m.cb.Execute(func() error { return e.Send(m.addr, auth) })
}
