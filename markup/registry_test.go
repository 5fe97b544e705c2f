package markup

import (
	"errors"
	"slices"
	"testing"

	"github.com/beevik/etree"
)

type underline struct{ Element }

func newUnderline(parent Node, raw *etree.Element) Handler {
	return &underline{NewElement(parent, raw)}
}

func (u *underline) Parse(b *Builder) Node { u.parseChildren(b, u); return u }

func (u *underline) EmitHTML(out *Writer) { wrap(out, u, "<u>", "</u>") }

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(TagSetWiki)

	if err := r.Register("u", newUnderline); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, ok := r.Lookup("u"); !ok {
		t.Fatalf("expected u to be registered")
	}

	err := r.Register("b", newUnderline)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if err := r.Register("", newUnderline); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := r.Register("s", nil); err == nil {
		t.Fatalf("expected error for nil constructor")
	}

	doc, err := NewBuilder(r, nil, nil).BuildString(`<fscode><b>x</b><u>y</u></fscode>`)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := EmitHTML(doc); got != "<b>x</b><u>y</u>" {
		t.Fatalf("failed registration must not change bindings, got %q", got)
	}
}

func TestRegistrySnapshotRestore(t *testing.T) {
	r := NewRegistry(TagSetWiki)
	snap := r.Snapshot()

	if err := r.Register("u", newUnderline); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	r.Restore(snap)
	if _, ok := r.Lookup("u"); ok {
		t.Fatalf("expected u to be gone after restore")
	}

	// snapshot must not be affected by later changes
	if err := r.Register("u", newUnderline); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, ok := snap["u"]; ok {
		t.Fatalf("snapshot shares state with registry")
	}

	r.Reset()
	if _, ok := r.Lookup("u"); ok {
		t.Fatalf("expected u to be gone after reset")
	}
	if _, ok := r.Lookup("macro:toc"); !ok {
		t.Fatalf("expected defaults after reset")
	}

	r.Restore(nil)
	if len(r.Names()) != 0 {
		t.Fatalf("expected empty registry, got %v", r.Names())
	}
	if err := r.Register("b", newBold); err != nil {
		t.Fatalf("Register after empty restore failed: %v", err)
	}
}

func TestRegistryTagSets(t *testing.T) {
	common := []string{
		"b", "break", "cell", "center", "code", "h", "h1", "h2", "h3", "h4", "h5", "h6",
		"i", "image", "p", "row", "sub", "super", "table", "url",
	}

	wiki := NewRegistry(TagSetWiki).Names()
	forum := NewRegistry(TagSetForum).Names()

	if !slices.Equal(forum, common) {
		t.Fatalf("unexpected forum tags %v", forum)
	}
	for _, name := range append(slices.Clone(common), "link", "macro:toc", "title") {
		if !slices.Contains(wiki, name) {
			t.Fatalf("wiki set misses %q", name)
		}
	}
	if len(wiki) != len(common)+3 {
		t.Fatalf("unexpected wiki tags %v", wiki)
	}
}

func TestProcessRegistry(t *testing.T) {
	r := Tags()
	if r != Tags() {
		t.Fatalf("expected single process wide registry")
	}

	snap := r.Snapshot()
	t.Cleanup(func() { r.Restore(snap) })

	if err := r.Register("u", newUnderline); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	doc, err := NewBuilder(nil, nil, nil).BuildString(`<fscode><u>y</u></fscode>`)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := EmitHTML(doc); got != "<u>y</u>" {
		t.Fatalf("unexpected html %q", got)
	}
}
