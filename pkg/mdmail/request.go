package mdmail

import (
	"errors"
	"fmt"

	"github.com/stanac/mdmail/pkg/mail"
)

// SendRequest describes one templated send. TenantKey defaults to the
// mailer's default tenant when empty.
type SendRequest struct {
	TenantKey   string
	TemplateKey string

	// FallbackToDefaultTenant retries the lookup under the default tenant
	// when the tenant-scoped lookup misses.
	FallbackToDefaultTenant bool

	// FallbackTemplateKey is tried after TemplateKey misses.
	FallbackTemplateKey string

	To  []string
	Cc  []string
	Bcc []string

	// OverrideSubject replaces the template's subject when set.
	OverrideSubject string

	// OverrideFromName and OverrideFromEmail replace the transport's
	// configured sender when set.
	OverrideFromName  string
	OverrideFromEmail string

	// Data is passed opaquely to the renderer.
	Data map[string]any
}

// normalize applies the default tenant and deduplicates recipients.
func (r *SendRequest) normalize(defaultTenant string) {
	if r.TenantKey == "" {
		r.TenantKey = defaultTenant
	}
	r.To = mail.DedupeAddresses(r.To)
	r.Cc = mail.DedupeAddresses(r.Cc)
	r.Bcc = mail.DedupeAddresses(r.Bcc)
}

// validate fails fast before any store lookup or rendering.
func (r *SendRequest) validate() error {
	if r.TemplateKey == "" {
		return fmt.Errorf("%w: template key must be set", ErrInvalidRequest)
	}

	recipients := make([]string, 0, len(r.To)+len(r.Cc)+len(r.Bcc))
	recipients = append(recipients, r.To...)
	recipients = append(recipients, r.Cc...)
	recipients = append(recipients, r.Bcc...)

	if len(recipients) == 0 {
		return fmt.Errorf("%w: no recipient set on To, Cc or Bcc", ErrInvalidRequest)
	}
	for _, addr := range recipients {
		if err := mail.ValidateAddress(addr); err != nil {
			return errors.Join(ErrInvalidRequest, err)
		}
	}
	return nil
}
