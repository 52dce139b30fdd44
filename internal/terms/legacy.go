package terms

import (
	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/config"
)

// legacyInstantiationFields extends the current fields with the relation edges
// the prior version stored inside instantiations.
func legacyInstantiationFields() []*Term {
	return append(instantiationFields(),
		&Term{name: "instantiationRelation", path: "instantiationRelation", presence: Inserted, children: []*Term{
			{name: "identifier", path: "instantiationRelationIdentifier"},
			{name: "type", path: "instantiationRelationType"},
		}},
	)
}

// LegacyDocument returns the schema of the prior description document, which
// embedded a single physical instantiation.
func LegacyDocument(cfg config.Config) (*Schema, error) {
	titles := append([]titleType{
		{"title", "Main", facetSearchDisplay},
		{"alternative_title", "Alternative", searchDisplay},
	}, minorTitles()...)

	terms := concat(
		single(
			pidTerm(cfg),
			&Term{name: "pbc_id", path: "pbcoreIdentifier", attrs: attrs("source", "NOLA Code"), indexAs: display},
		),
		titleTerms(titles...),
		single(
			&Term{name: "summary", path: "pbcoreDescription", attrs: attrs("descriptionType", "Description"), indexAs: searchDisplay},
			&Term{name: "contents", path: "pbcoreDescription",
				attrs:   attrs("descriptionType", "Table of Contents", "descriptionTypeRef", cfg.Vocabulary(config.VocabTableOfContents)),
				indexAs: searchDisplay},
		),
		subjectTerms(cfg),
		genreTerms(cfg),
		relationTerms(
			relation{"event_series", "Event Series", "series", facetSearchDisplay},
			relation{"arch_coll", "Archival Collection", "collection", kinds(coerce.Default, coerce.Displayable, coerce.Facetable)},
			relation{"arch_ser", "Archival Series", "archival_series", searchDisplay},
			relation{"coll_num", "Collection Number", "collection_number", searchDisplay},
			relation{"acc_num", "Accession Number", "accession_number", searchDisplay},
		),
		coverageTerms(),
		peopleTerms(cfg),
		single(
			&Term{name: "note", path: "pbcoreAnnotation", attrs: attrs("annotationType", "Notes"), indexAs: searchDisplay},
		),
		rightsTerms("access"),
		hoist("pbcoreInstantiation", legacyInstantiationFields()),
	)

	seeds := append([]Seed{{Path: P("pid")}}, instantiationDefaults("pbcoreInstantiation")...)
	return Build(LegacyDocumentSchema, "pbcoreDescriptionDocument", rootAttrs, terms, seeds)
}

// LegacyDigitalDocument returns the schema of the prior digital description
// document, which carried no instantiation.
func LegacyDigitalDocument(cfg config.Config) (*Schema, error) {
	titles := append([]titleType{
		{"main_title", "Main", facetSearchDisplay},
		{"alternative_title", "Alternative", searchDisplay},
	}, minorTitles()...)

	terms := concat(
		single(
			pidTerm(cfg),
			&Term{name: "pbc_id", path: "pbcoreIdentifier", attrs: attrs("source", "NOLA Code"), indexAs: display},
		),
		titleTerms(titles...),
		single(
			&Term{name: "summary", path: "pbcoreDescription", attrs: attrs("descriptionType", "Description"), indexAs: searchDisplay},
			&Term{name: "parts_list", path: "pbcoreDescription",
				attrs:   attrs("descriptionType", "Table of Contents", "descriptionTypeRef", cfg.Vocabulary(config.VocabTableOfContents)),
				indexAs: searchDisplay},
		),
		subjectTerms(cfg),
		genreTerms(cfg),
		relationTerms(
			relation{"event_series", "Event Series", "event_series", facetSearchDisplay},
			relation{"arch_coll", "Archival Collection", "archival_collection", kinds(coerce.Default, coerce.Displayable, coerce.Facetable)},
			relation{"arch_ser", "Archival Series", "archival_series", searchDisplay},
			relation{"coll_num", "Collection Number", "collection_number", searchDisplay},
			relation{"acc_num", "Accession Number", "accession_number", searchDisplay},
		),
		coverageTerms(),
		peopleTerms(cfg),
		single(
			&Term{name: "note", path: "pbcoreAnnotation", attrs: attrs("annotationType", "Notes"), indexAs: searchDisplay},
		),
		rightsTerms("usage"),
	)

	return Build(LegacyDigitalDocumentSchema, "pbcoreDescriptionDocument", rootAttrs, terms, []Seed{{Path: P("pid")}})
}

// LegacyInstantiation returns the schema of a prior instantiation, which was
// stored wrapped in a pbcoreDescriptionDocument.
func LegacyInstantiation(cfg config.Config) (*Schema, error) {
	terms := hoist("pbcoreInstantiation", legacyInstantiationFields())
	return Build(LegacyInstantiationSchema, "pbcoreDescriptionDocument", rootAttrs, terms, instantiationDefaults("pbcoreInstantiation"))
}
