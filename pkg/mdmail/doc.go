// Package mdmail sends templated email: it resolves a stored template
// through a tenant fallback chain, renders it with a pluggable view engine,
// derives html/text bodies from markdown when the template is
// markdown-flavored, and hands the assembled message to a transport.
//
// # Architecture
//
// The Mailer ties four collaborators together:
//
//   - templates.Store: persisted templates keyed by (tenant, template key)
//   - render.Registry: renderer key → view-engine factory
//   - MarkdownConverter: markdown → html/text derivation
//   - mail.Sender: message delivery (smtp, resend, or custom)
//
// # Usage
//
//	store := templates.NewMemoryStore()
//	sender := smtp.New(smtpCfg)
//
//	mailer := mdmail.New(store, sender)
//	mailer.RegisterRenderer("go", func() render.Renderer {
//		return render.NewTextTemplateRenderer()
//	})
//
//	err := mailer.Send(ctx, mdmail.SendRequest{
//		TemplateKey: "welcome",
//		To:          []string{"user@example.com"},
//		Data:        map[string]any{"Name": "World"},
//	})
//
// # Template resolution
//
// Lookups try, in order, stopping at the first hit:
//
//  1. (tenant, templateKey)
//  2. (default tenant, templateKey) — when FallbackToDefaultTenant is set
//     and the tenant is not already the default
//  3. (tenant, FallbackTemplateKey) — when FallbackTemplateKey is set
//  4. (default tenant, FallbackTemplateKey) — when both conditions hold
//
// When the whole chain misses, the returned NotFoundError lists exactly the
// pairs that were attempted.
//
// # Body composition
//
// A template with a markdown body always produces both html and text output,
// derived from the same markdown source; explicit html/text bodies on such a
// template are deliberately ignored. Without markdown, the text body is
// required and the html body optional. The two render calls are independent
// and run concurrently.
//
// # Errors
//
//   - ErrInvalidRequest: malformed request, checked before any store access
//   - ErrTemplateNotFound: fallback chain exhausted (see NotFoundError)
//   - ErrRendererNotRegistered: template names an unknown renderer key
//   - ErrInvalidTemplateContent: stored template violates the body invariant
//   - ErrSendFailed: transport failure, original error attached
package mdmail
