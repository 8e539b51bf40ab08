package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Converter turns markdown into HTML and plain text. The zero configuration
// handles CommonMark; extensions are injected at construction time and shared
// by both conversions.
//
// A Converter is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// Option configures a Converter.
type Option func(*options)

type options struct {
	extensions []goldmark.Extender
}

// WithExtensions adds goldmark extensions to the converter.
func WithExtensions(extensions ...goldmark.Extender) Option {
	return func(o *options) {
		o.extensions = append(o.extensions, extensions...)
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return &Converter{
		md: goldmark.New(goldmark.WithExtensions(o.extensions...)),
	}
}

// ToHTML converts markdown to HTML.
func (c *Converter) ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: failed to convert to html: %w", err)
	}
	return buf.String(), nil
}

// ToText converts markdown to plain text: formatting markers are dropped,
// block structure becomes blank lines, and link destinations are kept in
// parentheses after their labels.
func (c *Converter) ToText(source string) (string, error) {
	src := []byte(source)
	doc := c.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := renderPlainText(&buf, src, doc); err != nil {
		return "", fmt.Errorf("markdown: failed to convert to text: %w", err)
	}
	return buf.String(), nil
}
