package templates

import (
	"fmt"
	"time"
)

// DefaultTenantKey is the tenant used when a request does not name one.
const DefaultTenantKey = "default"

// TemplateInfo is the identity and metadata of a stored template.
// (TenantKey, TemplateKey) is the stable composite key.
type TemplateInfo struct {
	TemplateKey  string    `yaml:"templateKey"`
	TenantKey    string    `yaml:"tenantKey"`
	RendererKey  string    `yaml:"rendererKey"`
	Subject      string    `yaml:"subject"`
	CreatedBy    string    `yaml:"createdBy,omitempty"`
	CreatedAt    time.Time `yaml:"createdAt,omitempty"`
	LastEditedBy string    `yaml:"lastEditedBy,omitempty"`
	LastEditedAt time.Time `yaml:"lastEditedAt,omitempty"`
}

// Template is a stored email template. MarkdownBody takes precedence over
// HTMLBody and TextBody: when set, both outputs derive from it and the other
// two fields are ignored. When unset, TextBody is required.
type Template struct {
	TemplateInfo `yaml:",inline"`
	MarkdownBody string `yaml:"markdownBody,omitempty"`
	HTMLBody     string `yaml:"htmlBody,omitempty"`
	TextBody     string `yaml:"textBody,omitempty"`
}

// Validate checks the identity and content invariants.
func (t *Template) Validate() error {
	if t.TenantKey == "" || t.TemplateKey == "" {
		return ErrInvalidKey
	}
	if t.RendererKey == "" {
		return fmt.Errorf("%w: renderer key must be set (tenant: %q, template: %q)",
			ErrInvalidKey, t.TenantKey, t.TemplateKey)
	}
	if t.MarkdownBody == "" && t.TextBody == "" {
		return fmt.Errorf("%w (tenant: %q, template: %q)",
			ErrInvalidContent, t.TenantKey, t.TemplateKey)
	}
	return nil
}

// Clone returns a copy that callers may hold past the store call.
func (t *Template) Clone() *Template {
	c := *t
	return &c
}

// Info returns the metadata projection of the template.
func (t *Template) Info() TemplateInfo {
	return t.TemplateInfo
}

// normalizeTimestamps truncates audit timestamps to whole seconds, matching
// the unix-seconds columns of the SQL stores.
func (t *Template) normalizeTimestamps() {
	t.CreatedAt = truncateToSecond(t.CreatedAt)
	t.LastEditedAt = truncateToSecond(t.LastEditedAt)
}

func truncateToSecond(ts time.Time) time.Time {
	if ts.IsZero() {
		return ts
	}
	return time.Unix(ts.Unix(), 0).UTC()
}
