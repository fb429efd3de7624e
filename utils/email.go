package utils

import (
	"gopkg.in/gomail.v2"

	"github.com/localkart/core-api/config"
)

// SendEmail delivers an HTML mail through the configured SMTP relay.
func SendEmail(cfg *config.Config, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.EmailUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	return d.DialAndSend(m)
}
