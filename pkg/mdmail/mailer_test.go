package mdmail_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stanac/mdmail/pkg/mail"
	"github.com/stanac/mdmail/pkg/mdmail"
	"github.com/stanac/mdmail/pkg/render"
	"github.com/stanac/mdmail/pkg/templates"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mail.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, tenantKey, templateKey string) (*templates.Template, error) {
	args := m.Called(ctx, tenantKey, templateKey)
	if tpl := args.Get(0); tpl != nil {
		return tpl.(*templates.Template), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Upsert(ctx context.Context, template *templates.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, tenantKey, templateKey string) error {
	args := m.Called(ctx, tenantKey, templateKey)
	return args.Error(0)
}

func (m *mockStore) ListTenants(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) ListTemplates(ctx context.Context, tenantKey string) ([]templates.TemplateInfo, error) {
	args := m.Called(ctx, tenantKey)
	return args.Get(0).([]templates.TemplateInfo), args.Error(1)
}

func newTestMailer(t *testing.T, sender mail.Sender, tpls ...*templates.Template) *mdmail.Mailer {
	t.Helper()

	store := templates.NewMemoryStore()
	for _, tpl := range tpls {
		require.NoError(t, store.Upsert(context.Background(), tpl))
	}

	m := mdmail.New(store, sender)
	m.RegisterRenderer("go-template", func() render.Renderer {
		return render.NewTextTemplateRenderer()
	})
	return m
}

func markdownTemplate(tenant, key string) *templates.Template {
	return &templates.Template{
		TemplateInfo: templates.TemplateInfo{
			TenantKey:   tenant,
			TemplateKey: key,
			RendererKey: "go-template",
			Subject:     "Hi",
		},
		MarkdownBody: "Hello **{{.Name}}**",
	}
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	t.Run("renders markdown into html and text", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, markdownTemplate(templates.DefaultTenantKey, "welcome"))

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
			To:          []string{"user@example.com"},
			Data:        map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		sender.AssertExpectations(t)

		require.NotNil(t, sent)
		require.Equal(t, "Hi", sent.Subject)
		require.Contains(t, sent.HTML, "<strong>World</strong>")
		require.Contains(t, sent.HTML, "<p>")
		require.Equal(t, "Hello World", sent.Text)
		require.Equal(t, []string{"user@example.com"}, sent.To)
	})

	t.Run("markdown takes precedence over explicit bodies", func(t *testing.T) {
		t.Parallel()

		tpl := markdownTemplate(templates.DefaultTenantKey, "welcome")
		tpl.HTMLBody = "<b>ignored</b>"
		tpl.TextBody = "ignored"

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, tpl)

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
			To:          []string{"user@example.com"},
			Data:        map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		require.NotContains(t, sent.HTML, "ignored")
		require.NotContains(t, sent.Text, "ignored")
	})

	t.Run("text only template sends without html part", func(t *testing.T) {
		t.Parallel()

		tpl := &templates.Template{
			TemplateInfo: templates.TemplateInfo{
				TenantKey:   templates.DefaultTenantKey,
				TemplateKey: "plain",
				RendererKey: "go-template",
				Subject:     "Plain",
			},
			TextBody: "Hello {{.Name}}",
		}

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, tpl)

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "plain",
			To:          []string{"user@example.com"},
			Data:        map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		require.Empty(t, sent.HTML)
		require.Equal(t, "Hello World", sent.Text)
	})

	t.Run("text body with html body renders both", func(t *testing.T) {
		t.Parallel()

		tpl := &templates.Template{
			TemplateInfo: templates.TemplateInfo{
				TenantKey:   templates.DefaultTenantKey,
				TemplateKey: "pair",
				RendererKey: "go-template",
				Subject:     "Pair",
			},
			HTMLBody: "<p>{{.Name}}</p>",
			TextBody: "{{.Name}}",
		}

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, tpl)

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "pair",
			To:          []string{"user@example.com"},
			Data:        map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		require.Equal(t, "<p>World</p>", sent.HTML)
		require.Equal(t, "World", sent.Text)
	})

	t.Run("renders the subject through the same engine as the body", func(t *testing.T) {
		t.Parallel()

		tpl := markdownTemplate(templates.DefaultTenantKey, "invoice")
		tpl.Subject = "Invoice {{.Number}}"
		tpl.MarkdownBody = "Your invoice **{{.Number}}** is ready."

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, tpl)

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "invoice",
			To:          []string{"user@example.com"},
			Data:        map[string]any{"Number": "INV-1042"},
		})
		require.NoError(t, err)
		require.Equal(t, "Invoice INV-1042", sent.Subject)
		require.Equal(t, "Your invoice INV-1042 is ready.", sent.Text)
	})

	t.Run("renders the override subject too", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, markdownTemplate(templates.DefaultTenantKey, "welcome"))

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey:     "welcome",
			To:              []string{"user@example.com"},
			OverrideSubject: "Hey {{.Name}}",
			Data:            map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		require.Equal(t, "Hey World", sent.Subject)
	})

	t.Run("override subject wins over template subject", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, markdownTemplate(templates.DefaultTenantKey, "welcome"))

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey:     "welcome",
			To:              []string{"user@example.com"},
			OverrideSubject: "Urgent",
			Data:            map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		require.Equal(t, "Urgent", sent.Subject)
	})

	t.Run("from override is forwarded to the transport", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, markdownTemplate(templates.DefaultTenantKey, "welcome"))

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey:       "welcome",
			To:                []string{"user@example.com"},
			OverrideFromName:  "Support",
			OverrideFromEmail: "support@example.com",
			Data:              map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		require.Equal(t, "Support", sent.FromName)
		require.Equal(t, "support@example.com", sent.FromEmail)
	})

	t.Run("wraps transport failures", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("Send", mock.Anything, mock.Anything).
			Return(errors.New("connection refused")).Once()

		m := newTestMailer(t, sender, markdownTemplate(templates.DefaultTenantKey, "welcome"))

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
			To:          []string{"user@example.com"},
			Data:        map[string]any{"Name": "World"},
		})
		require.ErrorIs(t, err, mdmail.ErrSendFailed)
		require.Contains(t, err.Error(), "connection refused")
	})

	t.Run("unregistered renderer key", func(t *testing.T) {
		t.Parallel()

		tpl := markdownTemplate(templates.DefaultTenantKey, "welcome")
		tpl.RendererKey = "liquid"

		sender := &mockSender{}
		m := newTestMailer(t, sender, tpl)

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
			To:          []string{"user@example.com"},
		})
		require.ErrorIs(t, err, mdmail.ErrRendererNotRegistered)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("template with neither markdown nor text body", func(t *testing.T) {
		t.Parallel()

		// The memory store rejects bodiless templates on Upsert, so an
		// html-only template has to reach composition through a store
		// that does not validate.
		broken := &mockStore{}
		broken.On("Get", mock.Anything, templates.DefaultTenantKey, "broken").
			Return(&templates.Template{
				TemplateInfo: templates.TemplateInfo{
					TenantKey:   templates.DefaultTenantKey,
					TemplateKey: "broken",
					RendererKey: "go-template",
				},
				HTMLBody: "<p>only html</p>",
			}, nil).Once()

		sender := &mockSender{}
		m := mdmail.New(broken, sender)
		m.RegisterRenderer("go-template", func() render.Renderer {
			return render.NewTextTemplateRenderer()
		})

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "broken",
			To:          []string{"user@example.com"},
		})
		require.ErrorIs(t, err, mdmail.ErrInvalidTemplateContent)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

// echoRenderer returns template text unchanged and declares the cancelable
// call shape, recording which one was actually invoked.
type echoRenderer struct {
	syncCalled    atomic.Bool
	contextCalled atomic.Bool
}

func (r *echoRenderer) Sync() bool { return false }

func (r *echoRenderer) Render(tpl string, _ map[string]any) (string, error) {
	r.syncCalled.Store(true)
	return tpl, nil
}

func (r *echoRenderer) RenderContext(_ context.Context, tpl string, _ map[string]any) (string, error) {
	r.contextCalled.Store(true)
	return tpl, nil
}

func TestMailer_Send_EchoRenderer(t *testing.T) {
	t.Parallel()

	tpl := &templates.Template{
		TemplateInfo: templates.TemplateInfo{
			TenantKey:   templates.DefaultTenantKey,
			TemplateKey: "t1",
			RendererKey: "echo",
			Subject:     "Hi",
		},
		MarkdownBody: "Hello **World**",
	}

	store := templates.NewMemoryStore()
	require.NoError(t, store.Upsert(context.Background(), tpl))

	sender := &mockSender{}
	var sent *mail.Email
	sender.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
		Return(nil).Once()

	echo := &echoRenderer{}
	m := mdmail.New(store, sender)
	m.RegisterRenderer("echo", func() render.Renderer { return echo })

	err := m.Send(context.Background(), mdmail.SendRequest{
		TemplateKey: "t1",
		To:          []string{"a@b.com"},
	})
	require.NoError(t, err)

	require.Equal(t, "Hi", sent.Subject)
	require.Equal(t, "Hello World", sent.Text)
	require.Contains(t, sent.HTML, "<strong>World</strong>")

	// The renderer opted out of the sync path, so only the cancelable
	// shape may be invoked.
	require.True(t, echo.contextCalled.Load())
	require.False(t, echo.syncCalled.Load())
}

func TestMailer_Send_Validation(t *testing.T) {
	t.Parallel()

	t.Run("rejects request without template key", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}
		m := mdmail.New(store, sender)

		err := m.Send(context.Background(), mdmail.SendRequest{
			To: []string{"user@example.com"},
		})
		require.ErrorIs(t, err, mdmail.ErrInvalidRequest)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects request without recipients", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}
		m := mdmail.New(store, sender)

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
		})
		require.ErrorIs(t, err, mdmail.ErrInvalidRequest)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid recipient address", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}
		m := mdmail.New(store, sender)

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
			To:          []string{"not an address"},
		})
		require.ErrorIs(t, err, mdmail.ErrInvalidRequest)
		require.ErrorIs(t, err, mail.ErrInvalidAddress)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deduplicates recipients before sending", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := newTestMailer(t, sender, markdownTemplate(templates.DefaultTenantKey, "welcome"))

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
			To:          []string{"user@example.com", "USER@example.com"},
			Data:        map[string]any{"Name": "World"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"user@example.com"}, sent.To)
	})
}

func TestMailer_Send_CustomConverterAndSanitizer(t *testing.T) {
	t.Parallel()

	t.Run("sanitizer strips unsafe markup injected through data", func(t *testing.T) {
		t.Parallel()

		store := templates.NewMemoryStore()
		require.NoError(t, store.Upsert(context.Background(),
			markdownTemplate(templates.DefaultTenantKey, "welcome")))

		sender := &mockSender{}
		var sent *mail.Email
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*mail.Email) }).
			Return(nil).Once()

		m := mdmail.New(store, sender, mdmail.WithSanitizer(bluemonday.UGCPolicy()))
		m.RegisterRenderer("go-template", func() render.Renderer {
			return render.NewTextTemplateRenderer()
		})

		err := m.Send(context.Background(), mdmail.SendRequest{
			TemplateKey: "welcome",
			To:          []string{"user@example.com"},
			Data:        map[string]any{"Name": "<script>alert(1)</script>World"},
		})
		require.NoError(t, err)
		require.NotContains(t, sent.HTML, "<script>")
		require.Contains(t, sent.HTML, "World")
	})
}
