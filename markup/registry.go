package markup

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
)

// Constructor creates unparsed handler for the raw element.
type Constructor func(parent Node, raw *etree.Element) Handler

// ErrAlreadyRegistered is returned when tag name is already bound.
var ErrAlreadyRegistered = errors.New("tag is already registered")

// Registry maps tag names (case-sensitive, "space:tag" for prefixed tags) to
// handler constructors. Mutation is expected to happen at startup from a
// single goroutine, lookups are safe to do concurrently.
type Registry struct {
	mu       sync.RWMutex
	set      TagSet
	bindings map[string]Constructor
}

// NewRegistry returns registry populated with default bindings for the set.
func NewRegistry(set TagSet) *Registry {
	return &Registry{set: set, bindings: defaultBindings(set)}
}

// Register binds constructor to tag name. Existing binding is never replaced.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" || ctor == nil {
		return fmt.Errorf("unable to register tag %q: empty name or constructor", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.bindings[name] = ctor
	return nil
}

// Lookup returns constructor bound to the tag name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, ok := r.bindings[name]
	return ctor, ok
}

// Reset drops custom registrations returning registry to its default set.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = defaultBindings(r.set)
}

// Snapshot returns copy of current bindings, it could be later given to
// Restore. Useful to switch between parsing modes or to isolate tests.
func (r *Registry) Snapshot() map[string]Constructor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.bindings)
}

// Restore replaces all bindings with the snapshot.
func (r *Registry) Restore(snapshot map[string]Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = maps.Clone(snapshot)
	if r.bindings == nil {
		r.bindings = make(map[string]Constructor)
	}
}

// Names returns all bound tag names in natural order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := slices.Collect(maps.Keys(r.bindings))
	sort.Sort(natural.StringSlice(names))
	return names
}

func defaultBindings(set TagSet) map[string]Constructor {
	m := map[string]Constructor{
		"b":      newBold,
		"i":      newItalic,
		"super":  newSuper,
		"sub":    newSub,
		"center": newCenter,
		"code":   newCode,
		"p":      newParagraph,
		"h":      newHeading,
		"h1":     newHeading,
		"h2":     newHeading,
		"h3":     newHeading,
		"h4":     newHeading,
		"h5":     newHeading,
		"h6":     newHeading,
		"table":  newTable,
		"row":    newRow,
		"cell":   newCell,
		"break":  newBreak,
		"image":  newImage,
		"url":    newExternalLink,
	}
	if set == TagSetWiki {
		m["title"] = newTitle
		m["link"] = newInternalLink
		m["macro:toc"] = newTOCMacro
	}
	return m
}

var (
	tagsOnce sync.Once
	tags     *Registry
)

// Tags returns process wide registry with wiki tag set. It is created on first
// use, custom tags should be registered at program start.
func Tags() *Registry {
	tagsOnce.Do(func() {
		tags = NewRegistry(TagSetWiki)
	})
	return tags
}
