package mdmail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stanac/mdmail/pkg/render"
	"github.com/stanac/mdmail/pkg/templates"
)

var (
	// ErrInvalidRequest indicates a malformed send request: missing
	// template key, no recipients, or an invalid address. Checked before
	// any store access.
	ErrInvalidRequest = errors.New("mdmail: invalid send request")

	// ErrTemplateNotFound indicates the full fallback chain was exhausted.
	// The concrete error is a *NotFoundError carrying the attempted keys.
	ErrTemplateNotFound = errors.New("mdmail: template not found")

	// ErrRendererNotRegistered indicates a template references a renderer
	// key with no registered factory.
	ErrRendererNotRegistered = render.ErrNotRegistered

	// ErrInvalidTemplateContent indicates a stored template has neither a
	// markdown nor a text body.
	ErrInvalidTemplateContent = templates.ErrInvalidContent

	// ErrSendFailed indicates the transport rejected the assembled
	// message; the transport error is attached.
	ErrSendFailed = errors.New("mdmail: failed to send email")
)

// AttemptedKey is one (tenant, template key) pair tried during resolution.
type AttemptedKey struct {
	TenantKey   string
	TemplateKey string
}

func (k AttemptedKey) String() string {
	return fmt.Sprintf("(tenant: %q, template: %q)", k.TenantKey, k.TemplateKey)
}

// NotFoundError reports an exhausted fallback chain. Attempts holds exactly
// the pairs that were looked up, in resolution order.
type NotFoundError struct {
	Attempts []AttemptedKey
}

func (e *NotFoundError) Error() string {
	attempts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		attempts[i] = a.String()
	}
	return fmt.Sprintf("mdmail: template not found; searched: %s", strings.Join(attempts, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}
