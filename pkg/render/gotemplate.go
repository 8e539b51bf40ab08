package render

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// TextTemplateRenderer renders with Go's text/template engine. It is a
// synchronous renderer; parsing and execution are pure CPU work.
//
// Parsed templates are cached by their text (safe: the cache stores parsed
// structure, not rendered output), so repeated sends of the same template
// skip the parse step.
type TextTemplateRenderer struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
}

// NewTextTemplateRenderer creates a text/template renderer.
func NewTextTemplateRenderer() *TextTemplateRenderer {
	return &TextTemplateRenderer{
		cache: make(map[string]*template.Template),
	}
}

// Sync implements Renderer.
func (r *TextTemplateRenderer) Sync() bool { return true }

// Render implements Renderer.
func (r *TextTemplateRenderer) Render(tpl string, data map[string]any) (string, error) {
	t, err := r.getTemplate(tpl)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

// RenderContext implements Renderer. text/template has no suspension points,
// so this delegates to Render after a cancellation check.
func (r *TextTemplateRenderer) RenderContext(ctx context.Context, tpl string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.Render(tpl, data)
}

// getTemplate returns a cached parsed template or parses and caches it.
func (r *TextTemplateRenderer) getTemplate(tpl string) (*template.Template, error) {
	r.mu.RLock()
	if t, ok := r.cache[tpl]; ok {
		r.mu.RUnlock()
		return t, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if t, ok := r.cache[tpl]; ok {
		return t, nil
	}

	t, err := template.New("body").Parse(tpl)
	if err != nil {
		return nil, err
	}
	r.cache[tpl] = t
	return t, nil
}
