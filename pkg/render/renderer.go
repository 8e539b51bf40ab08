package render

import "context"

// Renderer substitutes data into a template string. Implementations declare
// their preferred call shape with Sync; callers invoke only the declared one.
type Renderer interface {
	// Sync reports whether the caller should use Render instead of
	// RenderContext. String-substitution engines avoid the context
	// plumbing; blocking engines opt into cancellation.
	Sync() bool

	// Render renders synchronously.
	Render(template string, data map[string]any) (string, error)

	// RenderContext renders with cancellation. Implementations must stop
	// work when ctx is done.
	RenderContext(ctx context.Context, template string, data map[string]any) (string, error)
}

// Factory produces a renderer instance. It is invoked once per resolution;
// stateless implementations may return a shared instance.
type Factory func() Renderer
