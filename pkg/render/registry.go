package render

import (
	"fmt"
	"sync"
)

// Registry maps renderer keys to factories. Registration happens at setup
// time; Resolve is safe for concurrent use during request handling.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register associates a renderer key with a factory. Registering an existing
// key replaces the previous factory.
func (r *Registry) Register(key string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
}

// Resolve returns a renderer instance for the key, or ErrNotRegistered when
// the key is unknown.
func (r *Registry) Resolve(key string) (Renderer, error) {
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, key)
	}
	return factory(), nil
}

// Keys returns the registered renderer keys.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	return keys
}
