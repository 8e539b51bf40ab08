// Package sqlite provides a templates.Store backed by SQLite via the
// cgo-free modernc.org/sqlite driver. The schema is created on Open.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stanac/mdmail/pkg/templates"
)

const schema = `
	CREATE TABLE IF NOT EXISTS email_templates (
		tenant_key       TEXT NOT NULL,
		template_key     TEXT NOT NULL,
		renderer_key     TEXT NOT NULL,
		subject          TEXT NOT NULL,
		created_by       TEXT,
		created_at       INTEGER,
		last_edited_by   TEXT,
		last_edited_at   INTEGER,
		markdown_body    TEXT,
		html_body        TEXT,
		text_body        TEXT,
		PRIMARY KEY (tenant_key, template_key)
	);
	CREATE INDEX IF NOT EXISTS idx_email_templates_tenant_key ON email_templates (tenant_key);`

// Store is a templates.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Option configures a Store.
type Option func(*options)

type options struct {
	wal bool
}

// WithoutWAL disables the write-ahead-log journal mode. WAL is on by
// default; in-memory databases ignore the pragma either way.
func WithoutWAL() Option {
	return func(o *options) {
		o.wal = false
	}
}

// Open opens (creating if needed) a SQLite database at dsn and ensures the
// template schema exists. Use "file::memory:?cache=shared" for an in-memory
// store.
func Open(dsn string, opts ...Option) (*Store, error) {
	o := &options{wal: true}
	for _, opt := range opts {
		opt(o)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	if o.wal {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: failed to enable WAL: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements templates.Store.
func (s *Store) Get(ctx context.Context, tenantKey, templateKey string) (*templates.Template, error) {
	const query = `
		SELECT tenant_key, template_key, renderer_key, subject,
			created_by, created_at, last_edited_by, last_edited_at,
			markdown_body, html_body, text_body
		FROM email_templates
		WHERE tenant_key = ? AND template_key = ?`

	row := s.db.QueryRowContext(ctx, query, tenantKey, templateKey)

	var (
		t                        templates.Template
		createdBy, lastEditedBy  sql.NullString
		createdAt, lastEditedAt  sql.NullInt64
		markdown, htmlBody, text sql.NullString
	)

	err := row.Scan(
		&t.TenantKey, &t.TemplateKey, &t.RendererKey, &t.Subject,
		&createdBy, &createdAt, &lastEditedBy, &lastEditedAt,
		&markdown, &htmlBody, &text,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, templates.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to get template: %w", err)
	}

	t.CreatedBy = createdBy.String
	t.CreatedAt = fromUnixSeconds(createdAt)
	t.LastEditedBy = lastEditedBy.String
	t.LastEditedAt = fromUnixSeconds(lastEditedAt)
	t.MarkdownBody = markdown.String
	t.HTMLBody = htmlBody.String
	t.TextBody = text.String

	return &t, nil
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
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant_key, template_key) DO UPDATE SET
			renderer_key   = excluded.renderer_key,
			subject        = excluded.subject,
			created_by     = excluded.created_by,
			created_at     = excluded.created_at,
			last_edited_by = excluded.last_edited_by,
			last_edited_at = excluded.last_edited_at,
			markdown_body  = excluded.markdown_body,
			html_body      = excluded.html_body,
			text_body      = excluded.text_body`

	_, err := s.db.ExecContext(ctx, query,
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
		return fmt.Errorf("sqlite: failed to upsert template: %w", err)
	}
	return nil
}

// Delete implements templates.Store.
func (s *Store) Delete(ctx context.Context, tenantKey, templateKey string) error {
	const query = `DELETE FROM email_templates WHERE tenant_key = ? AND template_key = ?`

	if _, err := s.db.ExecContext(ctx, query, tenantKey, templateKey); err != nil {
		return fmt.Errorf("sqlite: failed to delete template: %w", err)
	}
	return nil
}

// ListTenants implements templates.Store.
func (s *Store) ListTenants(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT tenant_key FROM email_templates ORDER BY tenant_key`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]string, 0)
	for rows.Next() {
		var tenant string
		if err := rows.Scan(&tenant); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to list tenants: %w", err)
	}
	return tenants, nil
}

// ListTemplates implements templates.Store.
func (s *Store) ListTemplates(ctx context.Context, tenantKey string) ([]templates.TemplateInfo, error) {
	const query = `
		SELECT tenant_key, template_key, renderer_key, subject,
			created_by, created_at, last_edited_by, last_edited_at
		FROM email_templates
		WHERE tenant_key = ?
		ORDER BY template_key`

	rows, err := s.db.QueryContext(ctx, query, tenantKey)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list templates: %w", err)
	}
	defer rows.Close()

	infos := make([]templates.TemplateInfo, 0)
	for rows.Next() {
		var (
			info                    templates.TemplateInfo
			createdBy, lastEditedBy sql.NullString
			createdAt, lastEditedAt sql.NullInt64
		)

		err := rows.Scan(
			&info.TenantKey, &info.TemplateKey, &info.RendererKey, &info.Subject,
			&createdBy, &createdAt, &lastEditedBy, &lastEditedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan template info: %w", err)
		}

		info.CreatedBy = createdBy.String
		info.CreatedAt = fromUnixSeconds(createdAt)
		info.LastEditedBy = lastEditedBy.String
		info.LastEditedAt = fromUnixSeconds(lastEditedAt)

		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to list templates: %w", err)
	}
	return infos, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func unixSeconds(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func fromUnixSeconds(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.Unix(v.Int64, 0).UTC()
}
