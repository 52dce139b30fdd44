package datastream

import (
	"fmt"

	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/internal/xmltree"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// DetectVariant guesses the structural version of a serialized document from
// its shape:
//
//	<pbcoreInstantiation>                          instantiation
//	<pbcoreDescriptionDocument>, no instantiation  document
//	one instantiation plus descriptive children    legacy_document
//	  or a PID identifier
//	one instantiation and nothing else             legacy_instantiation
//
// A legacy digital document is indistinguishable from a current document and
// must be named explicitly.
func DetectVariant(data []byte) (terms.Name, error) {
	tree, err := xmltree.Parse(data)
	if err != nil {
		return "", err
	}
	root := tree.Root()
	switch root.Tag {
	case "pbcoreInstantiation":
		return terms.InstantiationSchema, nil
	case "pbcoreDescriptionDocument":
	default:
		return "", fmt.Errorf("%w: unexpected root element %s", pbcore.ErrWrongVariant, root.Tag)
	}

	instantiations := root.SelectElements("pbcoreInstantiation")
	switch len(instantiations) {
	case 0:
		return terms.DocumentSchema, nil
	case 1:
	default:
		return "", fmt.Errorf("%w: %d instantiations", pbcore.ErrStructuralMismatch, len(instantiations))
	}

	for _, c := range root.ChildElements() {
		switch c.Tag {
		case "pbcoreInstantiation":
		case "pbcoreIdentifier":
			// legacy instantiations carry no PID of their own
			if v, _ := xmltree.AttrValue(c, "annotation"); v == pbcore.AnnotationPID {
				return terms.LegacyDocumentSchema, nil
			}
		default:
			return terms.LegacyDocumentSchema, nil
		}
	}
	return terms.LegacyInstantiationSchema, nil
}
