package markup

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// HTMLEmitter is implemented by nodes which contribute to HTML output.
// Emission is a pure function of the built tree, it must not change the tree
// and calling it repeatedly produces identical output.
type HTMLEmitter interface {
	EmitHTML(out *Writer)
}

// Writer accumulates HTML fragment.
type Writer struct {
	strings.Builder
}

// Attr writes ` name="value"` with value escaped.
func (w *Writer) Attr(name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	w.WriteString(html.EscapeString(value))
	w.WriteByte('"')
}

// IntAttr writes integer attribute.
func (w *Writer) IntAttr(name string, value int) {
	w.Attr(name, strconv.Itoa(value))
}

// Text writes escaped text.
func (w *Writer) Text(s string) {
	w.WriteString(escapeText(s))
}

func escapeText(s string) string {
	return html.EscapeString(s)
}

// EmitHTML returns HTML fragment for n and its subtree. Nodes which do not
// implement HTMLEmitter produce nothing.
func EmitHTML(n Node) string {
	var out Writer
	emitNode(&out, n)
	return out.String()
}

func emitNode(out *Writer, n Node) {
	if em, ok := n.(HTMLEmitter); ok {
		em.EmitHTML(out)
	}
}

// emitChildren writes fragments of all emittable children in order, children
// without emission capability are skipped.
func emitChildren(out *Writer, n Node) {
	for _, child := range n.Children() {
		emitNode(out, child)
	}
}

// wrap emits children of n enclosed in fixed opening and closing markup.
func wrap(out *Writer, n Node, opening, closing string) {
	out.WriteString(opening)
	emitChildren(out, n)
	out.WriteString(closing)
}
