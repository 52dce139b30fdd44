package terms

import (
	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/config"
)

// instantiationFields are the physical instantiation fields, relative to the
// pbcoreInstantiation element.
func instantiationFields() []*Term {
	return []*Term{
		{name: "barcode", path: "instantiationIdentifier", attrs: attrs("annotation", "Barcode"), indexAs: searchDisplay},
		{name: "creation_date", path: "instantiationDate", attrs: attrs("dateType", "created"), indexAs: dateDisplay},
		{name: "repository", path: "instantiationLocation", indexAs: searchFacetDisplay},
		{name: "media_format", path: "instantiationPhysical", indexAs: facetDisplay},
		{name: "standard", path: "instantiationStandard", indexAs: facetDisplay},
		{name: "media_type", path: "instantiationMediaType", indexAs: facetDisplay},
		{name: "generation", path: "instantiationGenerations", indexAs: facetDisplay},
		{name: "duration", path: "instantiationDuration", indexAs: display},
		{name: "language", path: "instantiationLanguage", indexAs: facetDisplay},
		{name: "colors", path: "instantiationColors", indexAs: facetDisplay},
		{name: "condition_note", path: "instantiationAnnotation", attrs: attrs("annotationType", "Condition"), indexAs: searchDisplay},
		{name: "cleaning_note", path: "instantiationAnnotation", attrs: attrs("annotationType", "Cleaning"), indexAs: searchDisplay},
		{name: "inst_note", path: "instantiationAnnotation", attrs: attrs("annotationType", "Notes"), indexAs: kinds(coerce.Default)},
	}
}

// instantiationDefaults seed new instantiations with the values every physical
// item starts from.
func instantiationDefaults(prefix ...string) []Seed {
	seed := func(name, value string) Seed {
		return Seed{Path: append(P(prefix...), name), Value: value}
	}
	return []Seed{
		seed("media_type", "Moving image"),
		seed("generation", "Original"),
		seed("colors", "Color"),
	}
}

// Instantiation returns the schema of a current physical pbcoreInstantiation.
func Instantiation(cfg config.Config) (*Schema, error) {
	terms := concat(
		instantiationFields(),
		single(&Term{name: "rights", path: "instantiationRights/rightsSummary", indexAs: searchDisplay}),
	)
	return Build(InstantiationSchema, "pbcoreInstantiation", nil, terms, instantiationDefaults())
}
