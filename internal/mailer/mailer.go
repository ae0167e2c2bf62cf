package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/pkg/logger"
)

// Mailer sends a single HTML email. Fan-out to many recipients is one Send
// call per recipient so an individual failure never hides the others.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type smtpMailer struct {
	host     string
	port     string
	email    string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.SMTPConfig) Mailer {
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		email:    cfg.Email,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	// Dev mode: without SMTP credentials, log instead of sending.
	if m.email == "" || m.password == "" {
		logger.Info("[DEV MODE] Email not sent", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	message := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.from, to, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", m.email, m.password, m.host)

	err := smtp.SendMail(
		m.host+":"+m.port,
		auth,
		m.email,
		[]string{to},
		message,
	)
	if err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to": to,
		})
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logger.Debug("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
