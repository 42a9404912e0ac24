package lib

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/devmesh/Backend-Dev-Mesh/src/config"
)

// Mailer delivers notification emails. Delivery is fire and forget:
// failures are logged, never surfaced to the request that triggered them.
type Mailer interface {
	Send(to, subject, body string) error
}

var Mail Mailer = noopMailer{}

type noopMailer struct{}

func (noopMailer) Send(string, string, string) error { return nil }

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// InitMailer configures SMTP delivery. Without SMTP settings the mailer
// stays a no-op, which keeps local development quiet.
func InitMailer(cfg *config.Config) {
	if cfg.SMTPHost == "" {
		Log.Info("SMTP not configured, email notifications disabled")
		return
	}

	Mail = &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Notify sends an email in the background.
func Notify(to, subject, body string) {
	go func() {
		if err := Mail.Send(to, subject, body); err != nil {
			Log.Error("Mail delivery failed", zap.String("to", to), zap.Error(err))
		}
	}()
}
