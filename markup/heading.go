package markup

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
)

// TOCEntry is implemented by nodes which appear in table of contents.
type TOCEntry interface {
	Node
	// Name is printed name of the entry.
	Name() string
	// Anchor is an element id to link to.
	Anchor() string
	// IndentLevel is nesting level, entries are not nested in the tree so
	// level is the only way to know the structure.
	IndentLevel() int
}

const untitled = "Untitled"

// Heading handles both fixed level tags (h1..h6) and variable level tag h
// with level attribute. Heading content is its name, nested markup is not
// parsed.
type Heading struct {
	Element
	level  int
	name   string
	anchor string
}

func newHeading(parent Node, raw *etree.Element) Handler {
	return &Heading{Element: NewElement(parent, raw)}
}

func (h *Heading) Parse(_ *Builder) Node {
	tag := h.Tag()
	switch {
	case tag == "h":
		h.level = 1
		if v, ok := h.attr("level"); ok {
			h.level = DecodeInt(h, "level", v, 1, 1)
		}
	case len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6':
		h.level = int(tag[1] - '0')
	default:
		// bound to some custom name, rendered as nonstandard heading
		h.level = 0
	}

	h.name = untitled
	if s := strings.Join(rawWords(h.raw, nil), " "); s != "" {
		h.name = s
	}

	base := slug.Make(h.name)
	if base == "" {
		base = "section"
	}
	h.anchor = base
	if doc := documentOf(h); doc != nil {
		h.anchor = doc.uniqueAnchor(base)
	}
	return h
}

// rawWords collects words of all text under el, nested markup included.
func rawWords(el *etree.Element, words []string) []string {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			words = append(words, strings.Fields(t.Data)...)
		case *etree.Element:
			words = rawWords(t, words)
		}
	}
	return words
}

func (h *Heading) Name() string { return h.name }

func (h *Heading) Anchor() string { return h.anchor }

func (h *Heading) IndentLevel() int { return h.level }

func (h *Heading) EmitHTML(out *Writer) {
	if h.level >= 1 && h.level <= 6 {
		tag := "h" + strconv.Itoa(h.level)
		out.WriteString("<" + tag)
		out.Attr("id", h.anchor)
		out.WriteByte('>')
		out.Text(h.name)
		out.WriteString("</" + tag + ">")
		return
	}
	// nonstandard heading, just use bold
	out.WriteString("<b><a")
	out.Attr("name", h.anchor)
	out.WriteByte('>')
	out.Text(h.name)
	out.WriteString("</a></b>")
}

// Title is document level title, only one is allowed per document.
type Title struct {
	Element
}

func newTitle(parent Node, raw *etree.Element) Handler {
	return &Title{Element: NewElement(parent, raw)}
}

func (t *Title) Parse(b *Builder) Node {
	if doc := documentOf(t); doc != nil && !doc.claim("title") {
		Report(t, ProblemDuplicateTitle)
		return nil
	}
	t.parseChildren(b, t)
	return t
}

func (t *Title) EmitHTML(out *Writer) {
	out.WriteString(`<h1 id="` + topAnchor + `">`)
	emitChildren(out, t)
	out.WriteString("</h1>")
}

// Text returns title content with markup removed.
func (t *Title) Text() string {
	return PlainText(t)
}

// Title returns text of the document title or empty string when document has
// none.
func (d *Document) Title() string {
	for _, n := range Flatten(d) {
		if t, ok := n.(*Title); ok {
			return t.Text()
		}
	}
	return ""
}
