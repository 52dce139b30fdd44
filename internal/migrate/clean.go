package migrate

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/internal/xmltree"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

var descriptionDocuments = []terms.Name{
	terms.DocumentSchema, terms.LegacyDocumentSchema, terms.LegacyDigitalDocumentSchema,
}

// CleanDocument removes every relation except Event Series ones, the
// top-level relation identifiers they leave behind, and re-files unannotated
// coverage values under the annotation of their first annotated sibling.
func (m *Migrator) CleanDocument(d *datastream.Document) error {
	if err := requireVariant("clean document", d, descriptionDocuments...); err != nil {
		return err
	}
	return m.clean(d, false, pbcore.AnnotationEventSeries)
}

// CleanDigitalDocument is CleanDocument that also keeps Accession Number
// relations and carries the Archival Collection value over into a fresh
// relation.
func (m *Migrator) CleanDigitalDocument(d *datastream.Document) error {
	if err := requireVariant("clean digital document", d, descriptionDocuments...); err != nil {
		return err
	}
	return m.clean(d, true, pbcore.AnnotationAccessionNumber, pbcore.AnnotationEventSeries)
}

func (m *Migrator) clean(d *datastream.Document, keepCollection bool, keep ...string) error {
	root := d.Root()

	// Coverage fields are validated before anything is removed so a
	// conflicting document is left as it was.
	plans, err := m.planCoverage(d)
	if err != nil {
		return err
	}

	var collection string
	if keepCollection {
		collection = archivalCollection(root)
	}

	removed := 0
	for _, rel := range xmltree.Descendants(root, "pbcoreRelation") {
		if !isRelation(rel, keep...) {
			xmltree.Remove(rel)
			removed++
		}
	}
	for _, tag := range []string{"pbcoreRelationIdentifier", "instantiationRelationIdentifier"} {
		for _, orphan := range root.SelectElements(tag) {
			xmltree.Remove(orphan)
			removed++
		}
	}
	m.logger.Verbose("clean: removed %d relation element(s)", removed)

	if collection != "" {
		if _, _, err := d.InsertRelation(collection, pbcore.AnnotationArchivalCollection); err != nil {
			return err
		}
		m.logger.Verbose("clean: kept archival collection %q", collection)
	}

	for _, p := range plans {
		for _, c := range p.values {
			if _, _, err := d.Insert(terms.P(p.field), xmltree.Text(c)); err != nil {
				return err
			}
			xmltree.Remove(c)
		}
	}

	d.Touch()
	return nil
}

// isRelation reports whether the first identifier of rel carries one of the
// annotations. A relation without an identifier matches nothing.
func isRelation(rel *etree.Element, annotations ...string) bool {
	id := rel.SelectElement("pbcoreRelationIdentifier")
	if id == nil {
		return false
	}
	got, _ := xmltree.AttrValue(id, "annotation")
	for _, a := range annotations {
		if got == a {
			return true
		}
	}
	return false
}

func archivalCollection(root *etree.Element) string {
	for _, id := range xmltree.Descendants(root, "pbcoreRelationIdentifier") {
		if v, _ := xmltree.AttrValue(id, "annotation"); v != pbcore.AnnotationArchivalCollection {
			continue
		}
		if text := strings.TrimSpace(xmltree.Text(id)); text != "" {
			return text
		}
	}
	return ""
}

type coveragePlan struct {
	field  string
	values []*etree.Element
}

// planCoverage finds the unannotated coverage values of every pbcoreCoverage
// and the field each one moves to.
func (m *Migrator) planCoverage(d *datastream.Document) ([]coveragePlan, error) {
	var plans []coveragePlan
	for _, cov := range xmltree.Descendants(d.Root(), "pbcoreCoverage") {
		var bare []*etree.Element
		for _, c := range cov.SelectElements("coverage") {
			if _, ok := xmltree.AttrValue(c, "annotation"); !ok {
				bare = append(bare, c)
			}
		}
		if len(bare) == 0 {
			continue
		}

		field, err := CoverageField(cov)
		if err != nil {
			return nil, err
		}
		if field == "" {
			m.logger.Warn("clean: coverage value %q has no annotated sibling, left in place", xmltree.Text(bare[0]))
			continue
		}
		if d.Schema().Term(field) == nil {
			return nil, &pbcore.TermError{Op: "clean", Path: field, Index: -1, Err: pbcore.ErrUnknownTerm}
		}
		plans = append(plans, coveragePlan{field: field, values: bare})
	}
	return plans, nil
}

// CoverageField infers the field of the unannotated values in cov from the
// annotation of its annotated children: the lower-cased last word, prefixed
// with "event_" ("Event Date" gives event_date). It returns "" when no child
// is annotated and pbcore.ErrAmbiguousCoverage when annotated children
// disagree.
func CoverageField(cov *etree.Element) (string, error) {
	first, annotation := xmltree.FirstWithAttr(cov, "coverage", "annotation")
	if first == nil {
		return "", nil
	}
	token := lastWord(annotation)
	for _, c := range cov.SelectElements("coverage") {
		a, ok := xmltree.AttrValue(c, "annotation")
		if !ok || c == first {
			continue
		}
		t := lastWord(a)
		switch {
		case t == "" || t == token:
		case token == "":
			token = t
		default:
			return "", fmt.Errorf("%w: %q and %q", pbcore.ErrAmbiguousCoverage, token, t)
		}
	}
	if token == "" {
		return "", nil
	}
	return "event_" + token, nil
}

func lastWord(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[len(words)-1])
}
