package mail

import "context"

// Sender defines the minimal interface that transport providers implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message. The context carries cancellation;
	// providers must abandon delivery when it is done.
	Send(ctx context.Context, email *Email) error
}
