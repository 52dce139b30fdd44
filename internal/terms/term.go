package terms

import (
	"strings"

	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/xmltree"
)

// Presence declares how the nodes of a term come to exist.
type Presence int

const (
	// Templated nodes are created on write at the next free index.
	Templated Presence = iota
	// Inserted nodes must be created with an explicit insert.
	Inserted
)

func (p Presence) String() string {
	if p == Inserted {
		return "inserted"
	}
	return "templated"
}

// Term is one mapping rule. Terms are declared inside this package and are
// read-only everywhere else; the accessors return copies of slice fields.
type Term struct {
	name      string
	path      string // element path relative to the parent scope, or "@attr"
	attrs     []xmltree.Attr
	children  []*Term
	ref       Path
	indexAs   []coerce.Kind
	presence  Presence
	singleton bool
}

func (t *Term) Name() string { return t.name }

// Path returns the element path relative to the parent scope, or "@attr".
func (t *Term) Path() string { return t.path }

// Attrs returns the attribute-value constraints stamped on the last step.
func (t *Term) Attrs() []xmltree.Attr {
	return append([]xmltree.Attr(nil), t.attrs...)
}

func (t *Term) Children() []*Term {
	return append([]*Term(nil), t.children...)
}

// Ref returns the absolute path of the aliased term, or nil.
func (t *Term) Ref() Path {
	return append(Path(nil), t.ref...)
}

// IndexAs returns the index kinds the term is projected as.
func (t *Term) IndexAs() []coerce.Kind {
	return append([]coerce.Kind(nil), t.indexAs...)
}

func (t *Term) Presence() Presence { return t.presence }

// Singleton reports whether one node is shared by all writes below the term.
func (t *Term) Singleton() bool { return t.singleton }

// IsAttribute reports whether the term addresses an attribute of its parent element.
func (t *Term) IsAttribute() bool {
	return strings.HasPrefix(t.path, "@")
}

// AttributeName returns the attribute addressed by an attribute term.
func (t *Term) AttributeName() string {
	return strings.TrimPrefix(t.path, "@")
}

// Steps returns the element steps of the term's path.
func (t *Term) Steps() []string {
	return xmltree.SplitPath(t.path)
}

// Child returns the child term called name.
func (t *Term) Child(name string) *Term {
	for _, c := range t.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Leaves returns the children that hold values: neither references nor
// containers of their own.
func (t *Term) Leaves() []*Term {
	var out []*Term
	for _, c := range t.children {
		if len(c.ref) == 0 && len(c.children) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// attrs builds constraint pairs from alternating names and values.
func attrs(kv ...string) []xmltree.Attr {
	out := make([]xmltree.Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, xmltree.Attr{Name: kv[i], Value: kv[i+1]})
	}
	return out
}

func kinds(k ...coerce.Kind) []coerce.Kind {
	return k
}
