package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stanac/mdmail/pkg/templates"
)

// Store is a templates.Store backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store on an existing connection pool. The pool's lifecycle
// belongs to the caller.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const selectColumns = `tenant_key, template_key, renderer_key, subject,
	created_by, created_at, last_edited_by, last_edited_at,
	markdown_body, html_body, text_body`

// Get implements templates.Store.
func (s *Store) Get(ctx context.Context, tenantKey, templateKey string) (*templates.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM email_templates WHERE tenant_key = $1 AND template_key = $2`, selectColumns)

	row := s.pool.QueryRow(ctx, query, tenantKey, templateKey)

	t, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, templates.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to get template: %w", err)
	}
	return t, nil
}

// Upsert implements templates.Store. The write is a full replace.
func (s *Store) Upsert(ctx context.Context, template *templates.Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	const query = `
		INSERT INTO email_templates (
			tenant_key, template_key, renderer_key, subject,
			created_by, created_at, last_edited_by, last_edited_at,
			markdown_body, html_body, text_body
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_key, template_key) DO UPDATE SET
			renderer_key   = EXCLUDED.renderer_key,
			subject        = EXCLUDED.subject,
			created_by     = EXCLUDED.created_by,
			created_at     = EXCLUDED.created_at,
			last_edited_by = EXCLUDED.last_edited_by,
			last_edited_at = EXCLUDED.last_edited_at,
			markdown_body  = EXCLUDED.markdown_body,
			html_body      = EXCLUDED.html_body,
			text_body      = EXCLUDED.text_body`

	_, err := s.pool.Exec(ctx, query,
		template.TenantKey,
		template.TemplateKey,
		template.RendererKey,
		template.Subject,
		nullString(template.CreatedBy),
		unixSeconds(template.CreatedAt),
		nullString(template.LastEditedBy),
		unixSeconds(template.LastEditedAt),
		nullString(template.MarkdownBody),
		nullString(template.HTMLBody),
		nullString(template.TextBody),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to upsert template: %w", err)
	}
	return nil
}

// Delete implements templates.Store.
func (s *Store) Delete(ctx context.Context, tenantKey, templateKey string) error {
	const query = `DELETE FROM email_templates WHERE tenant_key = $1 AND template_key = $2`

	if _, err := s.pool.Exec(ctx, query, tenantKey, templateKey); err != nil {
		return fmt.Errorf("postgres: failed to delete template: %w", err)
	}
	return nil
}

// ListTenants implements templates.Store.
func (s *Store) ListTenants(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT tenant_key FROM email_templates ORDER BY tenant_key`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]string, 0)
	for rows.Next() {
		var tenant string
		if err := rows.Scan(&tenant); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to list tenants: %w", err)
	}
	return tenants, nil
}

// ListTemplates implements templates.Store.
func (s *Store) ListTemplates(ctx context.Context, tenantKey string) ([]templates.TemplateInfo, error) {
	const query = `
		SELECT tenant_key, template_key, renderer_key, subject,
			created_by, created_at, last_edited_by, last_edited_at
		FROM email_templates
		WHERE tenant_key = $1
		ORDER BY template_key`

	rows, err := s.pool.Query(ctx, query, tenantKey)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list templates: %w", err)
	}
	defer rows.Close()

	infos := make([]templates.TemplateInfo, 0)
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan template info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to list templates: %w", err)
	}
	return infos, nil
}

func scanTemplate(row pgx.Row) (*templates.Template, error) {
	var (
		t                        templates.Template
		createdBy, lastEditedBy  *string
		createdAt, lastEditedAt  *int64
		markdown, htmlBody, text *string
	)

	err := row.Scan(
		&t.TenantKey, &t.TemplateKey, &t.RendererKey, &t.Subject,
		&createdBy, &createdAt, &lastEditedBy, &lastEditedAt,
		&markdown, &htmlBody, &text,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedBy = deref(createdBy)
	t.CreatedAt = fromUnixSeconds(createdAt)
	t.LastEditedBy = deref(lastEditedBy)
	t.LastEditedAt = fromUnixSeconds(lastEditedAt)
	t.MarkdownBody = deref(markdown)
	t.HTMLBody = deref(htmlBody)
	t.TextBody = deref(text)

	return &t, nil
}

func scanInfo(row pgx.Row) (templates.TemplateInfo, error) {
	var (
		info                    templates.TemplateInfo
		createdBy, lastEditedBy *string
		createdAt, lastEditedAt *int64
	)

	err := row.Scan(
		&info.TenantKey, &info.TemplateKey, &info.RendererKey, &info.Subject,
		&createdBy, &createdAt, &lastEditedBy, &lastEditedAt,
	)
	if err != nil {
		return info, err
	}

	info.CreatedBy = deref(createdBy)
	info.CreatedAt = fromUnixSeconds(createdAt)
	info.LastEditedBy = deref(lastEditedBy)
	info.LastEditedAt = fromUnixSeconds(lastEditedAt)

	return info, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// unixSeconds persists timestamps as whole seconds; sub-second precision is
// dropped here, which is the truncation the round-trip contract documents.
func unixSeconds(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	v := t.Unix()
	return &v
}

func fromUnixSeconds(v *int64) time.Time {
	if v == nil {
		return time.Time{}
	}
	return time.Unix(*v, 0).UTC()
}
