package markup

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/text/message"
)

// topAnchor is id of the document title, table of contents links back to it.
const topAnchor = "top"

// Document is the root of the built tree. Besides children it owns problem
// log and per-document bookkeeping shared by handlers.
type Document struct {
	ID string

	children []Node
	raw      *etree.Element
	opts     *Options
	printer  *message.Printer
	problems []Problem
	anchors  map[string]int
	claimed  map[string]bool
}

func newDocument(raw *etree.Element, opts *Options) *Document {
	id := ""
	if ref, err := uuid.NewV7(); err == nil {
		id = ref.String()
	}
	return &Document{
		ID:      id,
		raw:     raw,
		opts:    opts,
		printer: newPrinter(opts.Lang),
		anchors: map[string]int{topAnchor: 1},
		claimed: make(map[string]bool),
	}
}

func (d *Document) Parent() Node { return nil }

func (d *Document) Children() []Node { return d.children }

func (d *Document) AppendChild(child Node) {
	if child == nil {
		return
	}
	d.children = append(d.children, child)
}

func (d *Document) Raw() etree.Token { return d.raw }

// Options returns options document was built with.
func (d *Document) Options() *Options { return d.opts }

// Problems returns all nonfatal issues recorded so far.
func (d *Document) Problems() []Problem { return d.problems }

func (d *Document) EmitHTML(out *Writer) {
	emitChildren(out, d)
}

func (d *Document) report(src Node, key ProblemKey, args ...any) {
	d.problems = append(d.problems, Problem{
		Source:  src,
		Key:     key,
		Message: d.printer.Sprintf(string(key), args...),
	})
}

// text returns localized fixed text.
func (d *Document) text(key string) string {
	return d.printer.Sprintf(key)
}

// uniqueAnchor returns base unless it was already handed out, in which case
// numeric suffix is added.
func (d *Document) uniqueAnchor(base string) string {
	n := d.anchors[base]
	d.anchors[base] = n + 1
	if n == 0 {
		return base
	}
	for ; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if _, taken := d.anchors[candidate]; !taken {
			d.anchors[candidate] = 1
			return candidate
		}
	}
}

// claim marks singleton element as present, returns false when it already was.
func (d *Document) claim(name string) bool {
	if d.claimed[name] {
		return false
	}
	d.claimed[name] = true
	return true
}
