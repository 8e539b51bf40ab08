package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"
)

// renderPlainText walks the parsed document and writes only its textual
// content: formatting nodes contribute their children, block boundaries
// become blank lines, and link destinations follow their labels.
func renderPlainText(buf *bytes.Buffer, source []byte, doc ast.Node) error {
	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				buf.Write(node.Segment.Value(source))
				if node.HardLineBreak() || node.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			}

		case *ast.Link:
			if !entering && len(node.Destination) > 0 {
				fmt.Fprintf(buf, " (%s)", node.Destination)
			}

		case *ast.AutoLink:
			if entering {
				buf.Write(node.URL(source))
			}

		case *ast.Image:
			// Alt text only; the destination is noise in a text body.

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				writeRawLines(buf, source, n)
			}

		case *ButtonNode:
			if entering {
				buf.Write(node.Label)
				fmt.Fprintf(buf, " (%s)", node.URL)
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if !entering && node.NextSibling() != nil {
				buf.WriteByte('\n')
			}
		}

		if !entering && isBlockBoundary(n) && n.NextSibling() != nil {
			buf.WriteString("\n\n")
		}

		return ast.WalkContinue, nil
	})
}

// isBlockBoundary reports whether leaving n should produce a blank line
// before the next sibling block.
func isBlockBoundary(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.Blockquote,
		*ast.FencedCodeBlock, *ast.CodeBlock, *ast.List, *ast.ThematicBreak:
		return true
	}
	return false
}

func writeRawLines(buf *bytes.Buffer, source []byte, n ast.Node) {
	lines := n.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
}
