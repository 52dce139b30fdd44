package datastream

import (
	"errors"
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/internal/xmltree"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Document wraps one XML tree, the schema addressing it and a dirty flag.
type Document struct {
	schema *terms.Schema
	tree   *etree.Document
	dirty  bool
}

// New builds a document from the schema template: the root element with its
// attributes, followed by the schema's seed values.
func New(schema *terms.Schema) (*Document, error) {
	tree, _ := xmltree.NewDocument(schema.Root(), schema.RootAttrs()...)
	d := &Document{schema: schema, tree: tree}
	for _, seed := range schema.Seeds() {
		var values []string
		if seed.Value != "" {
			values = []string{seed.Value}
		}
		if _, _, err := d.Insert(seed.Path, values...); err != nil {
			return nil, fmt.Errorf("seed %s: %w", seed.Path, err)
		}
	}
	d.dirty = false
	return d, nil
}

// Load parses data as a document described by schema. The root element must
// match the schema's root.
func Load(schema *terms.Schema, data []byte) (*Document, error) {
	tree, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	if tag := tree.Root().Tag; tag != schema.Root() {
		return nil, fmt.Errorf("%w: root element %s, expected %s for %s",
			pbcore.ErrWrongVariant, tag, schema.Root(), schema.Name())
	}
	return &Document{schema: schema, tree: tree}, nil
}

// FromTree wraps an existing tree. The document takes ownership of tree.
func FromTree(schema *terms.Schema, tree *etree.Document) *Document {
	return &Document{schema: schema, tree: tree}
}

func (d *Document) Schema() *terms.Schema { return d.schema }

// Variant is the name of the schema the document is bound to.
func (d *Document) Variant() terms.Name { return d.schema.Name() }

// Root returns the root element of the tree.
func (d *Document) Root() *etree.Element { return d.tree.Root() }

// Tree exposes the underlying tree. Callers that mutate it must call Touch.
func (d *Document) Tree() *etree.Document { return d.tree }

func (d *Document) Dirty() bool { return d.dirty }

// Touch marks the document as modified.
func (d *Document) Touch() { d.dirty = true }

// MarkClean clears the dirty flag once the host has persisted the document.
func (d *Document) MarkClean() { d.dirty = false }

// Rebind switches the schema the document is read through. Used once a
// migration has reshaped the tree.
func (d *Document) Rebind(schema *terms.Schema) {
	d.schema = schema
	d.dirty = true
}

// Replace swaps in a new tree and schema, as when a migration re-roots the
// document.
func (d *Document) Replace(schema *terms.Schema, tree *etree.Document) {
	d.schema = schema
	d.tree = tree
	d.dirty = true
}

// Clone returns a deep copy of the document with the same schema and flag.
func (d *Document) Clone() *Document {
	return &Document{schema: d.schema, tree: d.tree.Copy(), dirty: d.dirty}
}

// Serialize renders the tree with an XML declaration and indentation.
func (d *Document) Serialize() ([]byte, error) {
	return xmltree.Serialize(d.tree)
}

// GetValues returns the text of every node matching path, in document order.
// No matching node is not an error.
func (d *Document) GetValues(path terms.Path) ([]string, error) {
	chain, err := d.schema.Resolve(path)
	if err != nil {
		return nil, err
	}
	last := chain[len(chain)-1]
	if last.IsAttribute() {
		var out []string
		for _, e := range d.locate(chain[:len(chain)-1]) {
			if v, ok := xmltree.AttrValue(e, last.AttributeName()); ok {
				out = append(out, v)
			}
		}
		return out, nil
	}
	nodes := d.locate(chain)
	out := make([]string, 0, len(nodes))
	for _, e := range nodes {
		out = append(out, xmltree.Text(e))
	}
	return out, nil
}

// FindNodes returns the elements matching path in document order. For an
// attribute term the elements carrying the attribute are returned.
func (d *Document) FindNodes(path terms.Path) ([]*etree.Element, error) {
	chain, err := d.schema.Resolve(path)
	if err != nil {
		return nil, err
	}
	return d.find(chain), nil
}

func (d *Document) find(chain []*terms.Term) []*etree.Element {
	last := chain[len(chain)-1]
	if !last.IsAttribute() {
		return d.locate(chain)
	}
	var out []*etree.Element
	for _, e := range d.locate(chain[:len(chain)-1]) {
		if _, ok := xmltree.AttrValue(e, last.AttributeName()); ok {
			out = append(out, e)
		}
	}
	return out
}

// locate descends from the root applying every term's steps and constraints.
func (d *Document) locate(chain []*terms.Term) []*etree.Element {
	current := []*etree.Element{d.tree.Root()}
	for _, t := range chain {
		var next []*etree.Element
		for _, e := range current {
			next = append(next, xmltree.Select(e, t.Steps(), t.Attrs())...)
		}
		current = next
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

// UpdateValues sets the value at each index. Indices are applied in ascending
// order; an index equal to the current node count creates the node when every
// term on the path is templated. Any other missing index fails with
// pbcore.ErrMissingNode before any value is written.
//
// For attribute terms the index addresses the owning elements, whether or not
// they already carry the attribute.
func (d *Document) UpdateValues(path terms.Path, values map[int]string) error {
	chain, err := d.schema.Resolve(path)
	if err != nil {
		return err
	}

	indices := make([]int, 0, len(values))
	for i := range values {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	last := chain[len(chain)-1]
	target := chain
	if last.IsAttribute() {
		target = chain[:len(chain)-1]
	}

	targets := func() []*etree.Element {
		if len(target) == 0 {
			return []*etree.Element{d.tree.Root()}
		}
		return d.locate(target)
	}

	// Every index must address an existing node or extend the templated
	// run by exactly one before anything is written.
	count := len(targets())
	creatable := len(target) > 0 && templated(target)
	for _, i := range indices {
		switch {
		case i >= 0 && i < count:
		case i == count && creatable:
			count++
		default:
			return &pbcore.TermError{Op: "update", Path: path.String(), Index: i, Err: pbcore.ErrMissingNode}
		}
	}

	for _, i := range indices {
		nodes := targets()
		var e *etree.Element
		if i < len(nodes) {
			e = nodes[i]
		} else {
			e = d.build(target)
		}

		if last.IsAttribute() {
			xmltree.SetAttr(e, last.AttributeName(), values[i])
		} else {
			xmltree.SetText(e, values[i])
		}
		d.dirty = true
	}
	return nil
}

func templated(chain []*terms.Term) bool {
	for _, t := range chain {
		if t.Presence() != terms.Templated {
			return false
		}
	}
	return len(chain) > 0
}

// build creates the elements for chain and returns the innermost one. Existing
// singleton ancestors are reused; everything else is created fresh, grouped
// after same-tag siblings.
func (d *Document) build(chain []*terms.Term) *etree.Element {
	parent := d.tree.Root()
	for i, t := range chain {
		if t.Singleton() && i < len(chain)-1 {
			if existing := xmltree.Select(parent, t.Steps(), t.Attrs()); len(existing) > 0 {
				parent = existing[0]
				continue
			}
		}
		parent = create(parent, t)
	}
	return parent
}

// create builds the element steps of t under parent. Constraints are stamped on
// the last step.
func create(parent *etree.Element, t *terms.Term) *etree.Element {
	steps := t.Steps()
	e := parent
	for i, step := range steps {
		var attrs []xmltree.Attr
		if i == len(steps)-1 {
			attrs = t.Attrs()
		}
		if i == 0 {
			e = xmltree.Append(e, step, attrs)
		} else {
			e = xmltree.Create(e, step, attrs, -1)
		}
	}
	return e
}

// Insert creates a new node for path and returns it with its index among the
// nodes matching path. For a container term every leaf child is created in
// declaration order and filled from values positionally; for a leaf term the
// single value, if given, becomes its text.
func (d *Document) Insert(path terms.Path, values ...string) (*etree.Element, int, error) {
	chain, err := d.schema.Resolve(path)
	if err != nil {
		return nil, -1, err
	}
	last := chain[len(chain)-1]
	if last.IsAttribute() {
		return nil, -1, &pbcore.TermError{Op: "insert", Path: path.String(), Index: -1,
			Err: errors.New("attribute terms are set with UpdateValues")}
	}

	leaves := last.Leaves()
	limit := 1
	if len(last.Children()) > 0 {
		limit = len(leaves)
	}
	if len(values) > limit {
		return nil, -1, &pbcore.TermError{Op: "insert", Path: path.String(), Index: -1,
			Err: fmt.Errorf("%d values for %d fields", len(values), limit)}
	}

	node := d.build(chain)
	if len(last.Children()) == 0 {
		if len(values) == 1 {
			xmltree.SetText(node, values[0])
		}
	} else {
		for i, leaf := range leaves {
			var v string
			if i < len(values) {
				v = values[i]
			}
			if leaf.IsAttribute() {
				if v != "" {
					xmltree.SetAttr(node, leaf.AttributeName(), v)
				}
				continue
			}
			child := create(node, leaf)
			if v != "" {
				xmltree.SetText(child, v)
			}
		}
	}
	d.dirty = true

	for i, e := range d.locate(chain) {
		if e == node {
			return node, i, nil
		}
	}
	// The new node does not satisfy its own locator; only possible for
	// constraints that live below the created element.
	return node, -1, nil
}

// InsertRelation adds a relation carrying value under the relation identifier
// annotated with annotation.
func (d *Document) InsertRelation(value, annotation string) (*etree.Element, int, error) {
	container := d.schema.Term("pbcoreRelation")
	if container == nil {
		return nil, -1, &pbcore.TermError{Op: "insert", Path: "pbcoreRelation", Index: -1, Err: pbcore.ErrUnknownTerm}
	}
	for _, c := range container.Children() {
		for _, a := range c.Attrs() {
			if a.Name == "annotation" && a.Value == annotation {
				return d.Insert(terms.P(container.Name(), c.Name()), value)
			}
		}
	}
	return nil, -1, &pbcore.TermError{Op: "insert", Path: "pbcoreRelation[" + annotation + "]", Index: -1,
		Err: pbcore.ErrUnknownTerm}
}

// RemoveNode removes the index-th node matching path. For attribute terms the
// attribute is removed from its element.
func (d *Document) RemoveNode(path terms.Path, index int) error {
	chain, err := d.schema.Resolve(path)
	if err != nil {
		return err
	}
	nodes := d.find(chain)
	if index < 0 || index >= len(nodes) {
		return &pbcore.TermError{Op: "remove", Path: path.String(), Index: index, Err: pbcore.ErrNotFound}
	}
	if last := chain[len(chain)-1]; last.IsAttribute() {
		nodes[index].RemoveAttr(last.AttributeName())
	} else {
		xmltree.Remove(nodes[index])
	}
	d.dirty = true
	return nil
}
