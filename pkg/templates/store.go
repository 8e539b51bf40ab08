package templates

import "context"

// Store persists templates keyed by (tenantKey, templateKey).
//
// Get returns ErrNotFound when no template exists for the pair. Upsert is a
// full replace; there is no partial patch. Implementations must return copies
// that callers can mutate freely.
type Store interface {
	// Get fetches a template by its composite key.
	Get(ctx context.Context, tenantKey, templateKey string) (*Template, error)

	// Upsert inserts or fully replaces a template.
	Upsert(ctx context.Context, template *Template) error

	// Delete removes a template. Deleting a missing template is not an
	// error.
	Delete(ctx context.Context, tenantKey, templateKey string) error

	// ListTenants returns the distinct tenant keys with stored templates.
	ListTenants(ctx context.Context) ([]string, error)

	// ListTemplates returns the metadata of all templates for a tenant.
	ListTemplates(ctx context.Context, tenantKey string) ([]TemplateInfo, error)
}
