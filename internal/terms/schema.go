package terms

import (
	"fmt"

	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/xmltree"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Name identifies a schema, and with it the document variant it describes.
type Name string

const (
	DocumentSchema              Name = "document"
	InstantiationSchema         Name = "instantiation"
	LegacyDocumentSchema        Name = "legacy_document"
	LegacyDigitalDocumentSchema Name = "legacy_digital_document"
	LegacyInstantiationSchema   Name = "legacy_instantiation"
)

// Legacy reports whether the schema describes a prior structural version.
func (n Name) Legacy() bool {
	switch n {
	case LegacyDocumentSchema, LegacyDigitalDocumentSchema, LegacyInstantiationSchema:
		return true
	}
	return false
}

// Seed is a value written into every new document built from the schema's template.
type Seed struct {
	Path  Path
	Value string
}

// Schema is an immutable tree of term definitions plus the document template.
type Schema struct {
	name      Name
	root      string
	rootAttrs []xmltree.Attr
	terms     []*Term
	seeds     []Seed
}

// maxRefDepth bounds reference chains; deeper chains are treated as cycles.
const maxRefDepth = 8

// Build validates the term tree and returns the schema.
func Build(name Name, root string, rootAttrs []xmltree.Attr, terms []*Term, seeds []Seed) (*Schema, error) {
	s := &Schema{name: name, root: root, rootAttrs: rootAttrs, terms: terms, seeds: seeds}
	if root == "" {
		return nil, fmt.Errorf("schema %s: empty root element", name)
	}
	if err := validateScope(terms, ""); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	var refErr error
	s.Walk(func(p Path, t *Term) {
		if refErr == nil && len(t.ref) > 0 {
			if _, err := s.Resolve(t.ref); err != nil {
				refErr = fmt.Errorf("schema %s: term %s: %w", name, p, err)
			}
		}
	})
	if refErr != nil {
		return nil, refErr
	}
	for _, seed := range seeds {
		if _, err := s.Resolve(seed.Path); err != nil {
			return nil, fmt.Errorf("schema %s: seed: %w", name, err)
		}
	}
	return s, nil
}

// MustBuild is like Build but panics on an invalid schema.
func MustBuild(name Name, root string, rootAttrs []xmltree.Attr, terms []*Term, seeds []Seed) *Schema {
	s, err := Build(name, root, rootAttrs, terms, seeds)
	if err != nil {
		panic(err)
	}
	return s
}

func validateScope(terms []*Term, scope string) error {
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		if !isValidName(t.name) {
			return fmt.Errorf("invalid term name %q in scope %q", t.name, scope)
		}
		if seen[t.name] {
			return fmt.Errorf("duplicate term %q in scope %q", t.name, scope)
		}
		seen[t.name] = true

		if len(t.ref) == 0 && t.path == "" {
			return fmt.Errorf("term %q has neither path nor reference", t.name)
		}
		if t.IsAttribute() && len(t.children) > 0 {
			return fmt.Errorf("attribute term %q cannot have children", t.name)
		}
		for _, k := range t.indexAs {
			if _, ok := coerce.Lookup(k); !ok {
				return fmt.Errorf("term %q: unsupported index kind %q", t.name, k)
			}
		}
		if err := validateScope(t.children, scope+"/"+t.name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) Name() Name {
	return s.name
}

// Root returns the root element name of documents described by the schema.
func (s *Schema) Root() string {
	return s.root
}

// RootAttrs returns the attributes stamped on the template root.
func (s *Schema) RootAttrs() []xmltree.Attr {
	out := make([]xmltree.Attr, len(s.rootAttrs))
	copy(out, s.rootAttrs)
	return out
}

// Seeds returns the template values in application order.
func (s *Schema) Seeds() []Seed {
	out := make([]Seed, len(s.seeds))
	copy(out, s.seeds)
	return out
}

// Terms returns the top-level terms in declaration order.
func (s *Schema) Terms() []*Term {
	out := make([]*Term, len(s.terms))
	copy(out, s.terms)
	return out
}

// Term returns the top-level term called name, or nil.
func (s *Schema) Term(name string) *Term {
	return find(s.terms, name)
}

// Walk visits every term depth-first in declaration order.
func (s *Schema) Walk(fn func(p Path, t *Term)) {
	var walk func(prefix Path, terms []*Term)
	walk = func(prefix Path, terms []*Term) {
		for _, t := range terms {
			p := append(append(Path{}, prefix...), t.name)
			fn(p, t)
			walk(p, t.children)
		}
	}
	walk(nil, s.terms)
}

// Resolve maps a term path to the chain of concrete (non-reference) terms that
// locate its nodes, outermost first. References are followed; they are
// absolute paths from the schema root.
func (s *Schema) Resolve(p Path) ([]*Term, error) {
	return s.resolve(p, 0)
}

func (s *Schema) resolve(p Path, depth int) ([]*Term, error) {
	if len(p) == 0 {
		return nil, &pbcore.TermError{Op: "resolve", Path: "", Index: -1, Err: pbcore.ErrUnknownTerm}
	}
	if depth > maxRefDepth {
		return nil, &pbcore.TermError{Op: "resolve", Path: p.String(), Index: -1,
			Err: fmt.Errorf("%w: reference cycle", pbcore.ErrUnknownTerm)}
	}

	var chain []*Term
	scope := s.terms
	for _, name := range p {
		t := find(scope, name)
		if t == nil {
			return nil, &pbcore.TermError{Op: "resolve", Path: p.String(), Index: -1, Err: pbcore.ErrUnknownTerm}
		}
		if len(t.ref) > 0 {
			target, err := s.resolve(t.ref, depth+1)
			if err != nil {
				return nil, err
			}
			chain = append([]*Term{}, target...)
			scope = target[len(target)-1].children
			continue
		}
		chain = append(chain, t)
		scope = t.children
	}
	return chain, nil
}

func find(terms []*Term, name string) *Term {
	for _, t := range terms {
		if t.name == name {
			return t
		}
	}
	return nil
}
