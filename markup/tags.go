package markup

import (
	"strings"

	"github.com/beevik/etree"
)

// Simple fixed wrappers. They keep default parsing and only differ in markup
// surrounding their children.

type Bold struct{ Element }

func newBold(parent Node, raw *etree.Element) Handler {
	return &Bold{NewElement(parent, raw)}
}

func (t *Bold) Parse(b *Builder) Node { t.parseChildren(b, t); return t }

func (t *Bold) EmitHTML(out *Writer) { wrap(out, t, "<b>", "</b>") }

type Italic struct{ Element }

func newItalic(parent Node, raw *etree.Element) Handler {
	return &Italic{NewElement(parent, raw)}
}

func (t *Italic) Parse(b *Builder) Node { t.parseChildren(b, t); return t }

func (t *Italic) EmitHTML(out *Writer) { wrap(out, t, "<i>", "</i>") }

type Super struct{ Element }

func newSuper(parent Node, raw *etree.Element) Handler {
	return &Super{NewElement(parent, raw)}
}

func (t *Super) Parse(b *Builder) Node { t.parseChildren(b, t); return t }

func (t *Super) EmitHTML(out *Writer) { wrap(out, t, "<sup>", "</sup>") }

type Sub struct{ Element }

func newSub(parent Node, raw *etree.Element) Handler {
	return &Sub{NewElement(parent, raw)}
}

func (t *Sub) Parse(b *Builder) Node { t.parseChildren(b, t); return t }

func (t *Sub) EmitHTML(out *Writer) { wrap(out, t, "<sub>", "</sub>") }

type Center struct{ Element }

func newCenter(parent Node, raw *etree.Element) Handler {
	return &Center{NewElement(parent, raw)}
}

func (t *Center) Parse(b *Builder) Node { t.parseChildren(b, t); return t }

func (t *Center) EmitHTML(out *Writer) { wrap(out, t, "<center>", "</center>") }

type Code struct{ Element }

func newCode(parent Node, raw *etree.Element) Handler {
	return &Code{NewElement(parent, raw)}
}

func (t *Code) Parse(b *Builder) Node { t.parseChildren(b, t); return t }

func (t *Code) EmitHTML(out *Writer) { wrap(out, t, "<code>", "</code>") }

type Paragraph struct{ Element }

func newParagraph(parent Node, raw *etree.Element) Handler {
	return &Paragraph{NewElement(parent, raw)}
}

func (t *Paragraph) Parse(b *Builder) Node { t.parseChildren(b, t); return t }

func (t *Paragraph) EmitHTML(out *Writer) { wrap(out, t, "<p>", "</p>") }

// Break inserts manual line break, wrap="object" clears floating objects.
type Break struct {
	Element
	clear bool
}

func newBreak(parent Node, raw *etree.Element) Handler {
	return &Break{Element: NewElement(parent, raw)}
}

func (t *Break) Parse(b *Builder) Node {
	if v, ok := t.attr("wrap"); ok && strings.EqualFold(strings.TrimSpace(v), "object") {
		t.clear = true
	}
	t.parseChildren(b, t)
	return t
}

func (t *Break) EmitHTML(out *Writer) {
	out.WriteString("<br")
	if t.clear {
		out.Attr("clear", "all")
	}
	out.WriteString("/>")
}
