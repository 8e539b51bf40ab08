package mail

// Email represents a fully-prepared email message ready for delivery.
// At least one of HTML or Text must be set before sending.
type Email struct {
	Subject   string            // Email subject
	HTML      string            // HTML body (optional when Text is set)
	Text      string            // Plain text body (optional when HTML is set)
	FromName  string            // Override provider's default sender name
	FromEmail string            // Override provider's default sender address
	To        []string          // Recipients (at least one across To/Cc/Bcc)
	Cc        []string          // Carbon copy recipients
	Bcc       []string          // Blind carbon copy recipients
	Headers   map[string]string // Custom headers
}

// Recipients returns all To, Cc and Bcc addresses in order.
func (e *Email) Recipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	out = append(out, e.To...)
	out = append(out, e.Cc...)
	out = append(out, e.Bcc...)
	return out
}

// Validate reports whether the email is deliverable: at least one recipient,
// every address syntactically valid, and at least one body representation.
func (e *Email) Validate() error {
	recipients := e.Recipients()
	if len(recipients) == 0 {
		return ErrNoRecipient
	}
	for _, addr := range recipients {
		if err := ValidateAddress(addr); err != nil {
			return err
		}
	}
	if e.HTML == "" && e.Text == "" {
		return ErrNoBody
	}
	return nil
}
