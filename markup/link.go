package markup

import (
	"strings"

	"github.com/beevik/etree"
)

// ExternalLink points outside. When location is absent or not allowed link
// text is still emitted, just without the anchor.
type ExternalLink struct {
	Element
	location string
}

func newExternalLink(parent Node, raw *etree.Element) Handler {
	return &ExternalLink{Element: NewElement(parent, raw)}
}

func (l *ExternalLink) Parse(b *Builder) Node {
	v, ok := l.attr("location")
	v = strings.TrimSpace(v)
	switch {
	case !ok || v == "":
		Report(l, ProblemMissingURL, "location")
	case b.Options().forbidden(v):
		Report(l, ProblemForbiddenURL, v)
	default:
		l.location = v
	}
	l.parseChildren(b, l)
	return l
}

// Location returns link target, empty when link was rejected.
func (l *ExternalLink) Location() string { return l.location }

func (l *ExternalLink) EmitHTML(out *Writer) {
	if l.location == "" {
		emitChildren(out, l)
		return
	}
	out.WriteString("<a")
	out.Attr("href", l.location)
	out.WriteByte('>')
	emitChildren(out, l)
	out.WriteString("</a>")
}

// InternalLink points to a page of one of configured wikis. Links are only
// rendered when wiki mode is on.
type InternalLink struct {
	Element
	provider WikiProvider
	page     string
	enabled  bool
}

func newInternalLink(parent Node, raw *etree.Element) Handler {
	return &InternalLink{Element: NewElement(parent, raw)}
}

func (l *InternalLink) Parse(b *Builder) Node {
	opts := b.Options()
	l.enabled = opts.Wiki

	name, _ := l.attr("wiki")
	name = strings.TrimSpace(name)
	if p, ok := opts.provider(name); ok {
		l.provider = p
		if v, ok := l.attr("page"); ok && strings.TrimSpace(v) != "" {
			l.page = strings.TrimSpace(v)
		} else {
			Report(l, ProblemMissingPage)
		}
	} else {
		Report(l, ProblemUnknownWiki, name)
	}
	l.parseChildren(b, l)
	return l
}

// Page returns target page name, empty when link could not be resolved.
func (l *InternalLink) Page() string { return l.page }

func (l *InternalLink) EmitHTML(out *Writer) {
	if !l.enabled || l.provider == nil || l.page == "" {
		emitChildren(out, l)
		return
	}
	out.WriteString("<a")
	out.Attr("href", l.provider.URLForPage(l.page))
	if !l.provider.HasPage(l.page) {
		out.Attr("class", "new")
	}
	out.WriteByte('>')
	emitChildren(out, l)
	out.WriteString("</a>")
}
