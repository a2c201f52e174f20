package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/samandr77/microservices/helpdesk/pkg/config"
)

type Client struct {
	from   string
	dialer *gomail.Dialer
}

func New(cfg config.Mailer) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	return &Client{
		from:   cfg.From,
		dialer: dialer,
	}
}

// Send delivers an html message to a single recipient.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	msg := NewMessage(c.from, to, subject, body)

	err := c.dialer.DialAndSend(msg)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	slog.InfoContext(ctx, "email sent", "subject", subject)

	return nil
}

func NewMessage(from, to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetAddressHeader("From", from, "Helpdesk")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return msg
}
