package migrate

import (
	"fmt"

	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/internal/xmltree"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Migrator runs the structural conversions.
type Migrator struct {
	registry *terms.Registry
	logger   pbcore.Logger
}

func New(registry *terms.Registry, logger pbcore.Logger) *Migrator {
	return &Migrator{registry: registry, logger: logger}
}

func requireVariant(op string, d *datastream.Document, allowed ...terms.Name) error {
	for _, name := range allowed {
		if d.Variant() == name {
			return nil
		}
	}
	return fmt.Errorf("%s: %w: got %s, want %v", op, pbcore.ErrWrongVariant, d.Variant(), allowed)
}

func singleInstantiation(op string, d *datastream.Document) error {
	if n := len(xmltree.Descendants(d.Root(), "pbcoreInstantiation")); n != 1 {
		return fmt.Errorf("%s: %w: %d instantiations", op, pbcore.ErrStructuralMismatch, n)
	}
	return nil
}

// ToDocument strips the embedded instantiation from a legacy document and
// rebinds it to the current document schema. A current document is left
// untouched.
func (m *Migrator) ToDocument(d *datastream.Document) error {
	if d.Variant() == terms.DocumentSchema {
		return nil
	}
	if err := requireVariant("to document", d, terms.LegacyDocumentSchema); err != nil {
		return err
	}
	schema, err := m.registry.Schema(terms.DocumentSchema)
	if err != nil {
		return err
	}

	for _, inst := range xmltree.Descendants(d.Root(), "pbcoreInstantiation") {
		xmltree.Remove(inst)
	}
	d.Rebind(schema)
	m.logger.Verbose("to document: removed embedded instantiation")
	return nil
}

// ToPhysicalInstantiation extracts the single embedded instantiation of a
// legacy document as a new current instantiation. Relation edges are dropped
// and the colors element is stamped with its vocabulary source. d is not
// modified.
func (m *Migrator) ToPhysicalInstantiation(d *datastream.Document) (*datastream.Document, error) {
	const op = "to physical instantiation"
	if err := requireVariant(op, d, terms.LegacyDocumentSchema); err != nil {
		return nil, err
	}
	if err := singleInstantiation(op, d); err != nil {
		return nil, err
	}
	schema, err := m.registry.Schema(terms.InstantiationSchema)
	if err != nil {
		return nil, err
	}

	inst := xmltree.Descendants(d.Root(), "pbcoreInstantiation")[0].Copy()
	relations := xmltree.Descendants(inst, "instantiationRelation")
	for _, rel := range relations {
		xmltree.Remove(rel)
	}
	if colors := xmltree.Descendants(inst, "instantiationColors"); len(colors) > 0 {
		xmltree.SetAttr(colors[0], "source", pbcore.SourceInstantiationColors)
	}

	out := datastream.FromTree(schema, xmltree.Adopt(inst))
	out.Touch()
	m.logger.Verbose("%s: dropped %d relation(s)", op, len(relations))
	return out, nil
}

// ToInstantiation re-roots a legacy instantiation at its pbcoreInstantiation
// element, discarding every ancestor. A current instantiation is left
// untouched.
func (m *Migrator) ToInstantiation(d *datastream.Document) error {
	const op = "to instantiation"
	if d.Variant() == terms.InstantiationSchema {
		return nil
	}
	if err := requireVariant(op, d, terms.LegacyInstantiationSchema); err != nil {
		return err
	}
	if err := singleInstantiation(op, d); err != nil {
		return err
	}
	schema, err := m.registry.Schema(terms.InstantiationSchema)
	if err != nil {
		return err
	}

	inst := xmltree.Descendants(d.Root(), "pbcoreInstantiation")[0]
	d.Replace(schema, xmltree.Adopt(inst))
	m.logger.Verbose("%s: re-rooted", op)
	return nil
}

// Split turns a legacy document into a current document (d itself) and the
// physical instantiation it embedded.
func (m *Migrator) Split(d *datastream.Document) (*datastream.Document, *datastream.Document, error) {
	inst, err := m.ToPhysicalInstantiation(d)
	if err != nil {
		return nil, nil, err
	}
	if err := m.ToDocument(d); err != nil {
		return nil, nil, err
	}
	return d, inst, nil
}

// Upgrade brings a document of any variant to the current version and returns
// the resulting documents: the document itself, followed by the instantiation
// split out of a legacy document. Current documents are returned unchanged.
func (m *Migrator) Upgrade(d *datastream.Document) ([]*datastream.Document, error) {
	switch d.Variant() {
	case terms.LegacyDocumentSchema:
		if err := m.CleanDocument(d); err != nil {
			return nil, err
		}
		doc, inst, err := m.Split(d)
		if err != nil {
			return nil, err
		}
		return []*datastream.Document{doc, inst}, nil

	case terms.LegacyDigitalDocumentSchema:
		if err := m.CleanDigitalDocument(d); err != nil {
			return nil, err
		}
		schema, err := m.registry.Schema(terms.DocumentSchema)
		if err != nil {
			return nil, err
		}
		d.Rebind(schema)
		return []*datastream.Document{d}, nil

	case terms.LegacyInstantiationSchema:
		if err := m.ToInstantiation(d); err != nil {
			return nil, err
		}
		return []*datastream.Document{d}, nil
	}
	return []*datastream.Document{d}, nil
}
