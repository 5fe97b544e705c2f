package markup

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"fsc/utils/debug"
)

// String returns readable dump of the built tree with raw attributes and
// recorded problems. It is used for debug reports only.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	tw := debug.NewTreeWriter()
	tw.Line(0, "Document id=%q container=%q", d.ID, d.opts.Container)
	for _, child := range d.children {
		dumpNode(tw, 1, child)
	}
	if len(d.problems) > 0 {
		tw.Line(0, "Problems: %d", len(d.problems))
		for i, p := range d.problems {
			tw.Line(1, "[%d] %s: %s", i, p.Key, p.String())
		}
	}
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, depth int, n Node) {
	switch v := n.(type) {
	case *Text:
		if !v.Whitespace() {
			tw.TextBlock(depth, "Text", v.Content())
		}
		return
	case TOCEntry:
		tw.Line(depth, "%s level=%d anchor=%q", label(n), v.IndentLevel(), v.Anchor())
	default:
		attrs := make(map[string]string)
		if raw, ok := n.Raw().(*etree.Element); ok && raw != nil {
			for _, a := range raw.Attr {
				attrs[a.FullKey()] = a.Value
			}
		}
		tw.Attrs(depth, label(n), attrs)
	}
	for _, child := range n.Children() {
		dumpNode(tw, depth+1, child)
	}
}

func label(n Node) string {
	name := fmt.Sprintf("%T", n)
	name = name[strings.LastIndexByte(name, '.')+1:]
	if tag := tagOf(n); tag != "" {
		return fmt.Sprintf("%s<%s>", name, tag)
	}
	return name
}
