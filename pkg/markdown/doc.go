// Package markdown converts markdown email bodies into the two
// representations a multipart message needs: HTML and plain text.
//
// Both conversions run the same goldmark instance, so a markdown template
// always yields a matched html/text pair derived from one source.
//
//	conv := markdown.New(markdown.WithExtensions(markdown.NewButtonExtension()))
//
//	html, err := conv.ToHTML("Hello **World**")  // "<p>Hello <strong>World</strong></p>"
//	text, err := conv.ToText("Hello **World**")  // "Hello World"
//
// The button extension adds an email-friendly call-to-action syntax:
//
//	[!button|Get Started](https://example.com/start)
//
// which renders as a styled anchor in HTML and as "Get Started
// (https://example.com/start)" in plain text.
package markdown
