package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/ryoptimus/DevStorm-backend/internal/config"
	"gopkg.in/gomail.v2"
)

const confirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome to DevStorm, {{.Username}}!</h2>
    <p>Confirm your email address to finish setting up your account:</p>
    <p><a href="{{.ConfirmURL}}">Confirm my account</a></p>
    <p>If you did not register, you can safely ignore this email.</p>
</body>
</html>`

// Mailer sends transactional email. It is an external collaborator from the
// domain's point of view: failures are logged by callers, never surfaced to
// API clients.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	tmpl   *template.Template
}

// New builds a Mailer from SMTP config. Returns nil when no SMTP host is
// configured, which callers treat as "email disabled".
func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.FromEmail,
		tmpl:   template.Must(template.New("confirmation").Parse(confirmationTemplate)),
	}
}

// SendConfirmation emails the account-confirmation link.
func (m *Mailer) SendConfirmation(to, username, confirmURL string) error {
	var body bytes.Buffer
	err := m.tmpl.Execute(&body, struct {
		Username   string
		ConfirmURL string
	}{Username: username, ConfirmURL: confirmURL})
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirm your DevStorm account")
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
