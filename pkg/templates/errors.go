package templates

import "errors"

var (
	// ErrNotFound indicates no template exists for the (tenant, key) pair.
	ErrNotFound = errors.New("templates: template not found")

	// ErrInvalidContent indicates a template violates the content
	// invariant: neither MarkdownBody nor TextBody is set.
	ErrInvalidContent = errors.New("templates: template must have a markdown or text body")

	// ErrInvalidKey indicates a template is missing a required key field.
	ErrInvalidKey = errors.New("templates: tenant key and template key must be set")
)
