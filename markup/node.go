package markup

import (
	"github.com/beevik/etree"
)

// Node is implemented by every element of the document tree: tag handlers,
// text leaves and the document root itself.
//
// Parent is a non-owning back reference, it is nil only for the tree root.
// Children are owned exclusively by the node which returned them.
type Node interface {
	Parent() Node
	Children() []Node
	AppendChild(child Node)
	// Raw returns originating markup token, it never changes after construction.
	Raw() etree.Token
}

// Handler is a node produced for a markup element. Parse reads element
// attributes, builds subtree and returns resulting node. Returning nil drops
// the element from the tree.
type Handler interface {
	Node
	Parse(b *Builder) Node
}

// Element is the base for all tag handlers. Embed it and call Element.Parse
// last from your own Parse, so children see already decoded attributes of the
// node.
type Element struct {
	parent   Node
	children []Node
	raw      *etree.Element
}

// NewElement creates unparsed element with given parent and raw contents.
func NewElement(parent Node, raw *etree.Element) Element {
	return Element{parent: parent, raw: raw}
}

func (e *Element) Parent() Node { return e.parent }

func (e *Element) Children() []Node { return e.children }

func (e *Element) AppendChild(child Node) {
	if child == nil {
		return
	}
	e.children = append(e.children, child)
}

func (e *Element) Raw() etree.Token { return e.raw }

// Tag returns full tag name of the originating element ("space:tag").
func (e *Element) Tag() string {
	if e.raw == nil {
		return ""
	}
	return e.raw.FullTag()
}

// attr returns attribute value and presence flag.
func (e *Element) attr(key string) (string, bool) {
	if e.raw == nil {
		return "", false
	}
	a := e.raw.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// parseChildren is the default parse step: every raw child is dispatched and
// non-nil results are appended in document order. It takes outer node
// explicitly since embedded Element cannot know the handler it belongs to.
func (e *Element) parseChildren(b *Builder, self Node) {
	if e.raw == nil {
		return
	}
	for _, tok := range e.raw.Child {
		e.AppendChild(b.Dispatch(self, tok))
	}
}

// Passthrough keeps structure of unregistered elements. It has no semantics of
// its own and emits only its children.
type Passthrough struct {
	Element
}

func newPassthrough(parent Node, raw *etree.Element) Handler {
	return &Passthrough{Element: NewElement(parent, raw)}
}

func (p *Passthrough) Parse(b *Builder) Node {
	p.parseChildren(b, p)
	return p
}

func (p *Passthrough) EmitHTML(out *Writer) {
	emitChildren(out, p)
}

// Root walks parent links up to the tree root. Construction guarantees there
// are no cycles so the walk always terminates.
func Root(n Node) Node {
	if n == nil {
		return nil
	}
	for p := n.Parent(); p != nil; p = n.Parent() {
		n = p
	}
	return n
}

// Flatten returns all nodes below n in document order (depth first, n itself
// excluded).
func Flatten(n Node) []Node {
	var all []Node
	var walk func(Node)
	walk = func(cur Node) {
		for _, child := range cur.Children() {
			all = append(all, child)
			walk(child)
		}
	}
	walk(n)
	return all
}

// documentOf returns document which owns the tree node n belongs to.
func documentOf(n Node) *Document {
	if doc, ok := Root(n).(*Document); ok {
		return doc
	}
	return nil
}
