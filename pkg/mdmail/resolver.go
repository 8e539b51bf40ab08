package mdmail

import (
	"context"
	"errors"
	"fmt"

	"github.com/stanac/mdmail/pkg/templates"
)

// resolveTemplate walks the fallback chain until a template is found:
//
//  1. (tenant, template)
//  2. (default tenant, template)        when FallbackToDefaultTenant
//  3. (tenant, fallback template)       when FallbackTemplateKey is set
//  4. (default tenant, fallback template) when both are set
//
// Steps whose key pair duplicates an earlier step are skipped, so the
// returned NotFoundError lists each looked-up pair exactly once.
func (m *Mailer) resolveTemplate(ctx context.Context, req SendRequest) (*templates.Template, error) {
	chain := m.resolutionChain(req)

	for _, key := range chain {
		tpl, err := m.store.Get(ctx, key.TenantKey, key.TemplateKey)
		if err == nil {
			m.log.DebugContext(ctx, "template resolved",
				"tenant", key.TenantKey,
				"template", key.TemplateKey,
			)
			return tpl, nil
		}
		if errors.Is(err, templates.ErrNotFound) {
			continue
		}
		return nil, fmt.Errorf("mdmail: lookup template %s: %w", key, err)
	}

	return nil, &NotFoundError{Attempts: chain}
}

func (m *Mailer) resolutionChain(req SendRequest) []AttemptedKey {
	chain := make([]AttemptedKey, 0, 4)
	add := func(tenant, template string) {
		key := AttemptedKey{TenantKey: tenant, TemplateKey: template}
		for _, seen := range chain {
			if seen == key {
				return
			}
		}
		chain = append(chain, key)
	}

	add(req.TenantKey, req.TemplateKey)
	if req.FallbackToDefaultTenant {
		add(m.defaultTenant, req.TemplateKey)
	}
	if req.FallbackTemplateKey != "" {
		add(req.TenantKey, req.FallbackTemplateKey)
		if req.FallbackToDefaultTenant {
			add(m.defaultTenant, req.FallbackTemplateKey)
		}
	}
	return chain
}
