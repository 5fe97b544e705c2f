package markup

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrNoContainer is returned when required top level element is absent.
var ErrNoContainer = errors.New("document container element is missing")

// Builder turns raw markup tree into the typed node tree. Single builder
// could be used for many documents, but not concurrently.
type Builder struct {
	tags *Registry
	opts *Options
	log  *zap.Logger
}

// NewBuilder returns builder using given registry and options, nil values
// select process wide registry and default options.
func NewBuilder(tags *Registry, opts *Options, log *zap.Logger) *Builder {
	if tags == nil {
		tags = Tags()
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{tags: tags, opts: opts, log: log}
}

// Options returns options documents are built with.
func (b *Builder) Options() *Options { return b.opts }

// Read parses markup from r and builds the tree. Input encoding is detected
// from XML declaration.
func (b *Builder) Read(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read markup: %w", err)
	}
	return b.Build(doc)
}

// BuildString is a shortcut for building document from in-memory markup.
func (b *Builder) BuildString(s string) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("unable to read markup: %w", err)
	}
	return b.Build(doc)
}

// Build walks raw tree and constructs Document from children of the container
// element. Absent container is the only fatal condition, everything else is
// recorded as document problems.
func (b *Builder) Build(doc *etree.Document) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document: %w", ErrNoContainer)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element: %w", ErrNoContainer)
	}
	if root.FullTag() != b.opts.Container {
		return nil, fmt.Errorf("unexpected root element %q, expected %q: %w", root.FullTag(), b.opts.Container, ErrNoContainer)
	}

	d := newDocument(root, b.opts)
	for _, tok := range root.Child {
		d.AppendChild(b.Dispatch(d, tok))
	}

	b.log.Debug("Document built",
		zap.String("id", d.ID), zap.Int("nodes", len(Flatten(d))), zap.Int("problems", len(d.problems)))
	return d, nil
}

// Dispatch produces parsed node for a single raw token or nil for ignorable
// tokens (comments, processing instructions, directives).
func (b *Builder) Dispatch(parent Node, tok etree.Token) Node {
	switch t := tok.(type) {
	case *etree.Element:
		ctor, ok := b.tags.Lookup(t.FullTag())
		if !ok {
			b.log.Debug("Unknown tag, keeping structure", zap.String("tag", t.FullTag()))
			ctor = newPassthrough
		}
		h := ctor(parent, t)
		if h == nil {
			return nil
		}
		return h.Parse(b)
	case *etree.CharData:
		return newText(parent, t)
	default:
		return nil
	}
}
