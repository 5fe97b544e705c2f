package markup

import (
	"math"

	"github.com/beevik/etree"
)

// TOCMacro renders table of contents. Contrary to other tags its output
// depends on the whole document, so everything is done during emission when
// the tree is complete.
type TOCMacro struct {
	Element
	depth  int // 0 means unlimited
	align  Align
	inline bool
}

func newTOCMacro(parent Node, raw *etree.Element) Handler {
	return &TOCMacro{Element: NewElement(parent, raw), align: AlignLeft, inline: true}
}

func (m *TOCMacro) Parse(_ *Builder) Node {
	if v, ok := m.attr("depth"); ok {
		m.depth = max(DecodeInt(m, "depth", v, math.MinInt, 0), 0)
	}
	// align and inline are cosmetic, bad values are silently ignored
	if v, ok := m.attr("align"); ok {
		if a, ok := parseAlign(v, horizontalAligns); ok {
			m.align = a
		}
	}
	if v, ok := m.attr("inline"); ok {
		if b, ok := parseBool(v); ok {
			m.inline = b
		}
	}
	return m
}

// Scope returns headings this macro summarizes in document order. When there
// is a heading before the macro, only its subsection is used, otherwise all
// headings of the document.
func (m *TOCMacro) Scope() []TOCEntry {
	all := Flatten(Root(m))

	self := -1
	for i, n := range all {
		if n == Node(m) {
			self = i
			break
		}
	}

	var owner TOCEntry
	for i := self - 1; i >= 0; i-- {
		if e, ok := all[i].(TOCEntry); ok {
			owner = e
			break
		}
	}

	var entries []TOCEntry
	if owner == nil {
		for _, n := range all {
			if e, ok := n.(TOCEntry); ok {
				entries = append(entries, e)
			}
		}
		return entries
	}
	for _, n := range all[self+1:] {
		e, ok := n.(TOCEntry)
		if !ok {
			continue
		}
		if e.IndentLevel() <= owner.IndentLevel() {
			break
		}
		entries = append(entries, e)
	}
	return entries
}

// Entries returns scope with depth limit applied.
func (m *TOCMacro) Entries() []TOCEntry {
	scope := m.Scope()
	if m.depth == 0 {
		return scope
	}
	entries := scope[:0:0]
	for _, e := range scope {
		if e.IndentLevel() <= m.depth {
			entries = append(entries, e)
		}
	}
	return entries
}

func (m *TOCMacro) text(key, dflt string) string {
	if doc := documentOf(m); doc != nil {
		return doc.text(key)
	}
	return dflt
}

func (m *TOCMacro) containerStyle() string {
	switch m.align {
	case AlignRight:
		return "float:right"
	case AlignCenter:
		return "display:table;margin:0 auto"
	default:
		return "float:left"
	}
}

func (m *TOCMacro) EmitHTML(out *Writer) {
	entries := m.Entries()
	if len(entries) == 0 {
		reportOnce(m, ProblemEmptyTOC)
	}

	if !m.inline {
		out.WriteString("<div")
		out.Attr("style", m.containerStyle())
		out.WriteString(">\n")
	}
	out.WriteString("<b>")
	out.Text(m.text(msgTOCCaption, "Table of Contents"))
	out.WriteString("</b>\n<ul>\n")

	// levels of currently open nested lists, base is level of the outer one
	var (
		open []int
		base int
	)
	for i, e := range entries {
		level := e.IndentLevel()
		if i == 0 {
			base = level
		}
		for len(open) > 0 && open[len(open)-1] > level {
			out.WriteString("</ul>\n")
			open = open[:len(open)-1]
		}
		current := base
		if len(open) > 0 {
			current = open[len(open)-1]
		}
		switch {
		case level > current:
			out.WriteString("<ul>\n")
			open = append(open, level)
		case len(open) == 0 && level < base:
			base = level
		}
		out.WriteString("<li><a")
		out.Attr("href", "#"+e.Anchor())
		out.WriteByte('>')
		out.Text(e.Name())
		out.WriteString("</a></li>\n")
	}
	for range open {
		out.WriteString("</ul>\n")
	}

	out.WriteString("</ul>\n<a")
	out.Attr("href", "#"+topAnchor)
	out.WriteByte('>')
	out.Text(m.text(msgTOCTop, "return to top"))
	out.WriteString("</a>\n")
	if !m.inline {
		out.WriteString("</div>\n")
	}
}
