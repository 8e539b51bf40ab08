// Package smtp implements the mail.Sender interface over plain SMTP with
// STARTTLS/SSL support and a multipart/alternative MIME body.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"github.com/stanac/mdmail/pkg/mail"
)

// Sender delivers email over SMTP.
type Sender struct {
	config Config
}

// New creates an SMTP sender. The configuration is validated on first send.
func New(cfg Config) *Sender {
	return &Sender{config: cfg}
}

// Send implements mail.Sender. The context cancels the dial and, via a
// connection close, any in-flight protocol exchange.
func (s *Sender) Send(ctx context.Context, email *mail.Email) error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := email.Validate(); err != nil {
		return err
	}

	fromEmail := s.config.FromEmail
	if email.FromEmail != "" {
		fromEmail = email.FromEmail
	}
	fromName := s.config.FromName
	if email.FromName != "" {
		fromName = email.FromName
	}

	msg := buildMessage(email, fromName, fromEmail, s.config.Host)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp: failed to dial %s: %w", addr, err)
	}

	// Closing the connection is the only way to interrupt net/smtp once
	// the protocol exchange has started.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if s.config.UseSSL {
		conn = tls.Client(conn, s.tlsConfig())
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp: failed to create client: %w", err)
	}
	defer func() { _ = client.Quit() }()

	if !s.config.UseSSL {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(s.tlsConfig()); err != nil {
				return fmt.Errorf("smtp: starttls failed: %w", err)
			}
		}
	}

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp: authentication failed: %w", err)
		}
	}

	if err := client.Mail(fromEmail); err != nil {
		return fmt.Errorf("smtp: mail from rejected: %w", err)
	}
	for _, rcpt := range email.Recipients() {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: recipient %s rejected: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: data command failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp: failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: failed to finish message: %w", err)
	}

	return nil
}

func (s *Sender) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         s.config.Host,
		InsecureSkipVerify: s.config.InsecureSkipVerify,
	}
}
