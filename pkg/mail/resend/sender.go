// Package resend implements the mail.Sender interface using the Resend API.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/stanac/mdmail/pkg/mail"
)

// Sender delivers email through Resend.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mail.Sender.
func (s *Sender) Send(ctx context.Context, email *mail.Email) error {
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

	req := &resend.SendEmailRequest{
		From:    mail.Recipient(fromName, fromEmail),
		To:      email.To,
		Cc:      email.Cc,
		Bcc:     email.Bcc,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		Headers: email.Headers,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}
