package terms

import (
	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/config"
)

// Document returns the schema of the current pbcoreDescriptionDocument.
func Document(cfg config.Config) (*Schema, error) {
	titles := append([]titleType{
		{"title", "Main", facetSearchDisplay},
		{"series", "Series", facetSearchDisplay},
		{"program", "Program", facetSearchDisplay},
		{"element", "Element", facetSearchDisplay},
		{"clip", "Clip", facetSearchDisplay},
		{"item", "Item", searchDisplay},
		{"image", "Image", searchDisplay},
	}, minorTitles()...)

	terms := concat(
		single(
			pidTerm(cfg),
			&Term{name: "pbc_id", path: "pbcoreIdentifier", attrs: attrs("source", "NOLA Code"), indexAs: display},
		),
		titleTerms(titles...),
		single(
			&Term{name: "category", path: "pbcoreSubject", attrs: attrs("subjectType", "Category"), indexAs: facetDisplay},
			&Term{name: "asset_date", path: "pbcoreAssetDate", indexAs: facetSearchDisplay},
		),
		subjectTerms(cfg),
		single(
			&Term{name: "description", path: "pbcoreDescription", indexAs: searchDisplay, children: []*Term{
				{name: "type", path: "@descriptionType"},
			}},
			&Term{name: "contents", path: "pbcoreDescription",
				attrs:   attrs("descriptionType", "Table of Contents", "descriptionTypeRef", cfg.Vocabulary(config.VocabTableOfContents)),
				indexAs: searchDisplay},
			&Term{name: "asset_type", path: "pbcoreAssetType", indexAs: searchFacet},
		),
		genreTerms(cfg),
		relationTerms(
			relation{"event_series", "Event Series", "", nil},
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
		rightsTerms("rights_summary"),
	)

	return Build(DocumentSchema, "pbcoreDescriptionDocument", rootAttrs, terms, []Seed{{Path: P("pid")}})
}
