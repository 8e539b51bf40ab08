package mdmail

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/stanac/mdmail/pkg/render"
	"github.com/stanac/mdmail/pkg/templates"
)

type emailBody struct {
	html string
	text string
}

// composeBody produces the html/text pair for a resolved template.
//
// A markdown body takes precedence over explicit html/text bodies: both
// representations are derived from it and rendered independently. Without
// markdown the text body is mandatory and html optional.
func (m *Mailer) composeBody(ctx context.Context, renderer render.Renderer, tpl *templates.Template, data map[string]any) (emailBody, error) {
	if tpl.MarkdownBody != "" {
		return m.composeFromMarkdown(ctx, renderer, tpl, data)
	}

	if tpl.TextBody == "" {
		return emailBody{}, fmt.Errorf("%w: template %q (tenant %q) has neither markdown nor text body",
			ErrInvalidTemplateContent, tpl.TemplateKey, tpl.TenantKey)
	}

	var body emailBody
	var err error
	body.text, err = renderWith(ctx, renderer, tpl.TextBody, data)
	if err != nil {
		return emailBody{}, err
	}
	if tpl.HTMLBody != "" {
		body.html, err = renderWith(ctx, renderer, tpl.HTMLBody, data)
		if err != nil {
			return emailBody{}, err
		}
	}
	return body, nil
}

func (m *Mailer) composeFromMarkdown(ctx context.Context, renderer render.Renderer, tpl *templates.Template, data map[string]any) (emailBody, error) {
	htmlSource, err := m.markdown.ToHTML(tpl.MarkdownBody)
	if err != nil {
		return emailBody{}, fmt.Errorf("mdmail: convert markdown to html: %w", err)
	}
	textSource, err := m.markdown.ToText(tpl.MarkdownBody)
	if err != nil {
		return emailBody{}, fmt.Errorf("mdmail: convert markdown to text: %w", err)
	}

	// The two renders share no state, so run them concurrently.
	var body emailBody
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := renderWith(gctx, renderer, htmlSource, data)
		if err != nil {
			return err
		}
		body.html = out
		return nil
	})
	g.Go(func() error {
		out, err := renderWith(gctx, renderer, textSource, data)
		if err != nil {
			return err
		}
		body.text = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return emailBody{}, err
	}
	return body, nil
}

// renderWith dispatches to the call shape the renderer declares.
func renderWith(ctx context.Context, r render.Renderer, template string, data map[string]any) (string, error) {
	if r.Sync() {
		return r.Render(template, data)
	}
	return r.RenderContext(ctx, template, data)
}
