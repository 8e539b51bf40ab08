// Package mail defines the email message contract shared by all transport
// providers: the Email type, recipient address validation, and the Sender
// interface that providers implement.
//
// # Architecture
//
// The package is the boundary between the templating core and delivery:
//
//   - Email: a fully-prepared message (subject, recipients, html/text bodies)
//   - Sender: interface that transport providers implement
//   - ValidateAddress: syntactic validation applied to every recipient
//
// Providers live in subpackages:
//
//   - mail/smtp: delivers over SMTP with a multipart/alternative MIME body
//   - mail/resend: delivers through the Resend API
//
// # Usage
//
//	sender := smtp.New(smtp.Config{
//		Host:      "smtp.example.com",
//		Port:      587,
//		FromEmail: "no-reply@example.com",
//	})
//
//	err := sender.Send(ctx, &mail.Email{
//		To:      []string{"user@example.com"},
//		Subject: "Hello",
//		Text:    "Hello!",
//	})
//
// # Custom Providers
//
// Implement the Sender interface to add support for other transports:
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mail.Email) error {
//		// deliver using your provider's API
//		return nil
//	}
package mail
