// Package templates defines the persisted email template model and the Store
// interface backing it, plus an in-memory store and a YAML fixture loader.
//
// # Model
//
// A Template is identified by its (TenantKey, TemplateKey) composite key and
// carries up to three content bodies. MarkdownBody takes precedence: when it
// is set the html and text outputs are both derived from it and the explicit
// HTMLBody/TextBody fields are ignored. When MarkdownBody is empty, TextBody
// is required and HTMLBody is optional. This precedence is deliberate.
//
// # Stores
//
// Store implementations:
//
//   - NewMemoryStore: process-local map, suitable for tests and single-node
//     setups
//   - templates/postgres: pgx-backed store with goose migrations
//   - templates/sqlite: modernc.org/sqlite store
//
// All stores truncate audit timestamps to whole seconds on write, matching
// the unix-seconds columns of the SQL schema, and return defensive copies on
// read so the rendering pipeline never mutates persisted state.
//
// # Fixtures
//
// LoadFS parses YAML template definitions and Seed upserts them into a store:
//
//	//go:embed fixtures/*.yml
//	var fixtures embed.FS
//
//	if err := templates.Seed(ctx, store, fixtures, "fixtures/welcome.yml"); err != nil {
//		return err
//	}
package templates
