package mdmail

import (
	"context"
	"errors"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/stanac/mdmail/pkg/mail"
	"github.com/stanac/mdmail/pkg/markdown"
	"github.com/stanac/mdmail/pkg/render"
	"github.com/stanac/mdmail/pkg/templates"
)

// MarkdownConverter derives the html and text representations of a markdown
// body. Both methods must be pure: same input, same output.
type MarkdownConverter interface {
	ToHTML(source string) (string, error)
	ToText(source string) (string, error)
}

// Mailer resolves, renders and dispatches templated email.
type Mailer struct {
	store         templates.Store
	sender        mail.Sender
	registry      *render.Registry
	markdown      MarkdownConverter
	sanitizer     *bluemonday.Policy
	log           *slog.Logger
	defaultTenant string
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithDefaultTenant overrides the tenant used when a request does not name
// one.
func WithDefaultTenant(key string) Option {
	return func(m *Mailer) {
		m.defaultTenant = key
	}
}

// WithMarkdownConverter swaps the markdown conversion implementation.
func WithMarkdownConverter(conv MarkdownConverter) Option {
	return func(m *Mailer) {
		m.markdown = conv
	}
}

// WithSanitizer runs every rendered html body through the policy before the
// message is assembled. Useful when request data flows into markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(m *Mailer) {
		m.sanitizer = policy
	}
}

// WithLogger enables debug/info logging of resolution and dispatch.
func WithLogger(log *slog.Logger) Option {
	return func(m *Mailer) {
		m.log = log
	}
}

// New creates a Mailer on a template store and a transport.
func New(store templates.Store, sender mail.Sender, opts ...Option) *Mailer {
	m := &Mailer{
		store:         store,
		sender:        sender,
		registry:      render.NewRegistry(),
		markdown:      markdown.New(markdown.WithExtensions(markdown.NewButtonExtension())),
		log:           slog.New(slog.DiscardHandler),
		defaultTenant: templates.DefaultTenantKey,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterRenderer associates a renderer key with a factory. Registration
// happens at setup time; Send resolves keys concurrently.
func (m *Mailer) RegisterRenderer(key string, factory render.Factory) {
	m.registry.Register(key, factory)
}

// Send validates the request, resolves the template through the fallback
// chain, renders the body pair and dispatches the message. Any failure
// aborts the send; no partial email is transmitted.
func (m *Mailer) Send(ctx context.Context, req SendRequest) error {
	req.normalize(m.defaultTenant)
	if err := req.validate(); err != nil {
		return err
	}

	tpl, err := m.resolveTemplate(ctx, req)
	if err != nil {
		return err
	}

	renderer, err := m.registry.Resolve(tpl.RendererKey)
	if err != nil {
		return err
	}

	body, err := m.composeBody(ctx, renderer, tpl, req.Data)
	if err != nil {
		return err
	}

	if m.sanitizer != nil && body.html != "" {
		body.html = m.sanitizer.Sanitize(body.html)
	}

	// The subject goes through the same engine as the body, so templates
	// can personalize it. Override precedence is applied before rendering.
	subject := tpl.Subject
	if req.OverrideSubject != "" {
		subject = req.OverrideSubject
	}
	subject, err = renderWith(ctx, renderer, subject, req.Data)
	if err != nil {
		return err
	}

	email := &mail.Email{
		Subject:   subject,
		HTML:      body.html,
		Text:      body.text,
		FromName:  req.OverrideFromName,
		FromEmail: req.OverrideFromEmail,
		To:        req.To,
		Cc:        req.Cc,
		Bcc:       req.Bcc,
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	m.log.InfoContext(ctx, "email sent",
		slog.String("tenant", tpl.TenantKey),
		slog.String("template", tpl.TemplateKey),
		slog.Int("recipients", len(email.Recipients())),
	)

	return nil
}
