package templates

import (
	"context"
	"sort"
	"sync"
)

// storeKey is the composite map key. A struct key avoids separator-collision
// issues with concatenated string keys.
type storeKey struct {
	tenantKey   string
	templateKey string
}

// MemoryStore is a process-local Store for tests and single-node setups.
// It is safe for concurrent use.
type MemoryStore struct {
	items map[storeKey]*Template
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[storeKey]*Template),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, tenantKey, templateKey string) (*Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.items[storeKey{tenantKey, templateKey}]
	if !ok {
		return nil, ErrNotFound
	}
	return t.Clone(), nil
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(ctx context.Context, template *Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := template.Validate(); err != nil {
		return err
	}

	stored := template.Clone()
	stored.normalizeTimestamps()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[storeKey{stored.TenantKey, stored.TemplateKey}] = stored
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, tenantKey, templateKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, storeKey{tenantKey, templateKey})
	return nil
}

// ListTenants implements Store.
func (s *MemoryStore) ListTenants(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	tenants := make([]string, 0)
	for key := range s.items {
		if _, ok := seen[key.tenantKey]; ok {
			continue
		}
		seen[key.tenantKey] = struct{}{}
		tenants = append(tenants, key.tenantKey)
	}
	sort.Strings(tenants)
	return tenants, nil
}

// ListTemplates implements Store.
func (s *MemoryStore) ListTemplates(ctx context.Context, tenantKey string) ([]TemplateInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]TemplateInfo, 0)
	for key, t := range s.items {
		if key.tenantKey != tenantKey {
			continue
		}
		infos = append(infos, t.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].TemplateKey < infos[j].TemplateKey
	})
	return infos, nil
}
