// Package mail delivers login emails over SMTP.
package mail

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"classquiz/internal/config"
)

type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg config.MailConfig
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.cfg.Sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

// LogSender stands in when SMTP is not configured: the magic link still has
// to reach the operator somehow, so it goes to the log.
type LogSender struct {
	Logger *logrus.Logger
}

func (s LogSender) Send(to, subject, body string) error {
	s.Logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Infof("mail not configured, message body: %s", body)
	return nil
}
