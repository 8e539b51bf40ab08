// Package render defines the pluggable view-engine boundary: a Renderer
// substitutes request data into a template string, and a Registry maps
// renderer keys (stored on templates) to renderer factories.
//
// # Dual-mode rendering
//
// A Renderer declares whether it renders synchronously via Sync(). Simple
// string-substitution engines return true and are called through Render;
// engines that block on I/O or benefit from cancellation return false and are
// called through RenderContext. Callers must honor the declared mode.
//
// # Usage
//
//	registry := render.NewRegistry()
//	registry.Register("go", func() render.Renderer {
//		return render.NewTextTemplateRenderer()
//	})
//
//	r, err := registry.Resolve("go")
//	out, err := r.Render("Hello {{.Name}}", map[string]any{"Name": "World"})
//
// The registry is populated at setup time and is safe for concurrent reads
// during request handling.
package render
