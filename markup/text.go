package markup

import (
	"strings"

	"github.com/beevik/etree"
)

// Text is a childless leaf holding literal character data.
type Text struct {
	parent Node
	raw    *etree.CharData
}

func newText(parent Node, raw *etree.CharData) *Text {
	return &Text{parent: parent, raw: raw}
}

func (t *Text) Parent() Node { return t.parent }

// Children always returns nil - text cannot have children.
func (t *Text) Children() []Node { return nil }

// AppendChild is a no-op.
func (t *Text) AppendChild(Node) {}

func (t *Text) Raw() etree.Token { return t.raw }

// Content returns literal text.
func (t *Text) Content() string {
	if t.raw == nil {
		return ""
	}
	return t.raw.Data
}

// Whitespace reports whether leaf consists of whitespace only.
func (t *Text) Whitespace() bool {
	return strings.TrimSpace(t.Content()) == ""
}

// htmlReplacer is applied after escaping, keeps sequences of spaces visible in
// rendered output.
var htmlReplacer = strings.NewReplacer("  ", "&nbsp; ")

func (t *Text) EmitHTML(out *Writer) {
	out.WriteString(htmlReplacer.Replace(escapeText(t.Content())))
}

// PlainText concatenates all text leaves under n with whitespace collapsed.
func PlainText(n Node) string {
	var parts []string
	for _, c := range Flatten(n) {
		if t, ok := c.(*Text); ok {
			parts = append(parts, strings.Fields(t.Content())...)
		}
	}
	return strings.Join(parts, " ")
}
