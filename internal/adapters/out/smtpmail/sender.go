// Package smtpmail sends notification email over SMTP.
package smtpmail

import (
	"context"
	"crypto/tls"
	"errors"
	"strings"

	"gopkg.in/gomail.v2"
)

// ErrRecipientRequired is returned for a blank address.
var ErrRecipientRequired = errors.New("smtpmail: recipient address is required")

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender implements ports.EmailSender. It dials per message; gomail offers
// no context support, so callers bound each attempt themselves.
type Sender struct {
	from    string
	deliver func(...*gomail.Message) error
}

func NewSender(cfg Config) *Sender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return &Sender{from: cfg.From, deliver: d.DialAndSend}
}

// NewSenderWithDelivery builds a Sender that hands messages to deliver
// instead of dialing a server.
func NewSenderWithDelivery(from string, deliver func(...*gomail.Message) error) *Sender {
	return &Sender{from: from, deliver: deliver}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrRecipientRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.deliver(m)
}
