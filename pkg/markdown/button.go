package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ButtonNode represents a call-to-action button link in the AST.
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

func (n *ButtonNode) Kind() ast.NodeKind {
	return KindButton
}

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// buttonMarker is the syntax prefix that triggers button parsing:
// [!button|Label](URL).
var buttonMarker = []byte("[!button|")

type buttonParser struct{}

func (p *buttonParser) Trigger() []byte {
	return []byte{'['}
}

func (p *buttonParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, buttonMarker) {
		return nil
	}

	labelEnd := bytes.IndexByte(line[len(buttonMarker):], ']')
	if labelEnd < 0 {
		return nil
	}
	labelEnd += len(buttonMarker)

	if labelEnd+1 >= len(line) || line[labelEnd+1] != '(' {
		return nil
	}

	urlEnd := bytes.IndexByte(line[labelEnd+2:], ')')
	if urlEnd < 0 {
		return nil
	}
	urlEnd += labelEnd + 2

	node := &ButtonNode{
		Label: line[len(buttonMarker):labelEnd],
		URL:   line[labelEnd+2 : urlEnd],
	}
	block.Advance(urlEnd + 1)

	return node
}

type buttonRenderer struct{}

func (r *buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.renderButton)
}

// Inline styles instead of a class: email clients ignore <style> blocks.
func (r *buttonRenderer) renderButton(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ButtonNode)

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(n.URL))
	_, _ = w.WriteString(`" style="display:inline-block;padding:10px 20px;background-color:#1a73e8;color:#ffffff;text-decoration:none;border-radius:4px">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

type buttonExtension struct{}

func (e *buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&buttonParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&buttonRenderer{}, 50),
	))
}

// NewButtonExtension creates a goldmark extension that parses
// [!button|Label](URL) into a button-styled anchor.
func NewButtonExtension() goldmark.Extender {
	return &buttonExtension{}
}
