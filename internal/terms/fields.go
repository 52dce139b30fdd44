package terms

import (
	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/config"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Common projection sets.
var (
	facetSearchDisplay = kinds(coerce.Facetable, coerce.Default, coerce.Displayable)
	searchDisplay      = kinds(coerce.Default, coerce.Displayable)
	searchFacet        = kinds(coerce.Default, coerce.Facetable)
	searchFacetDisplay = kinds(coerce.Default, coerce.Facetable, coerce.Displayable)
	facetDisplay       = kinds(coerce.Facetable, coerce.Displayable)
	dateDisplay        = kinds(coerce.Date, coerce.Displayable)
	display            = kinds(coerce.Displayable)
)

// rootAttrs are stamped on every description document template.
var rootAttrs = attrs(
	"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance",
	"xsi:schemaLocation", "http://www.pbcore.org/PBCore/PBCoreNamespace.html",
)

func pidTerm(cfg config.Config) *Term {
	return &Term{name: "pid", path: "pbcoreIdentifier",
		attrs: attrs("source", cfg.Institution, "annotation", pbcore.AnnotationPID)}
}

type titleType struct {
	name, titleType string
	index           []coerce.Kind
}

func titleTerms(types ...titleType) []*Term {
	out := make([]*Term, 0, len(types))
	for _, tt := range types {
		out = append(out, &Term{name: tt.name, path: "pbcoreTitle", attrs: attrs("titleType", tt.titleType), indexAs: tt.index})
	}
	return out
}

// minorTitles are shared by every description document shape.
func minorTitles() []titleType {
	return []titleType{
		{"chapter", "Chapter", facetSearchDisplay},
		{"episode", "Episode", facetSearchDisplay},
		{"label", "Label", searchDisplay},
		{"segment", "Segment", searchDisplay},
		{"subtitle", "Subtitle", searchDisplay},
		{"track", "Track", searchDisplay},
		{"translation", "Translation", searchDisplay},
	}
}

func subjectTerms(cfg config.Config) []*Term {
	return []*Term{
		{name: "subject", path: "pbcoreSubject", children: []*Term{
			{name: "name", path: "subject"},
			{name: "authority", path: "subjectAuthorityUsed"},
		}},
		{name: "subject_name", ref: P("subject", "name"), indexAs: searchFacetDisplay},
		{name: "lc_subject", path: "pbcoreSubject",
			attrs: attrs("source", "Library of Congress Subject Headings", "ref", cfg.Vocabulary(config.VocabLCSubjects)), indexAs: display},
		{name: "lc_name", path: "pbcoreSubject",
			attrs: attrs("source", "Library of Congress Name Authority File", "ref", cfg.Vocabulary(config.VocabLCNames)), indexAs: display},
		{name: "rh_subject", path: "pbcoreSubject", attrs: attrs("source", cfg.Institution), indexAs: display},
	}
}

func genreTerms(cfg config.Config) []*Term {
	return []*Term{
		{name: "genre", path: "pbcoreGenre", indexAs: kinds(coerce.Facetable)},
		{name: "getty_genre", path: "pbcoreGenre",
			attrs: attrs("source", "The Getty Research Institute Art and Architecture Thesaurus", "ref", cfg.Vocabulary(config.VocabGetty)), indexAs: display},
		{name: "lc_genre", path: "pbcoreGenre",
			attrs: attrs("source", "Library of Congress Genre/Form Terms", "ref", cfg.Vocabulary(config.VocabLCGenres)), indexAs: display},
		{name: "lc_subject_genre", path: "pbcoreGenre",
			attrs: attrs("source", "Library of Congress Subject Headings", "ref", cfg.Vocabulary(config.VocabLCSubjects)), indexAs: display},
	}
}

// relation describes one annotated pbcoreRelationIdentifier and the top-level
// alias exposing it.
type relation struct {
	child, annotation string
	alias             string
	index             []coerce.Kind
}

func relationTerms(rels ...relation) []*Term {
	container := &Term{name: "pbcoreRelation", path: "pbcoreRelation"}
	out := []*Term{container}
	for _, r := range rels {
		container.children = append(container.children,
			&Term{name: r.child, path: "pbcoreRelationIdentifier", attrs: attrs("annotation", r.annotation)})
		if r.alias != "" {
			out = append(out, &Term{name: r.alias, ref: P("pbcoreRelation", r.child), indexAs: r.index})
		}
	}
	return out
}

func coverageTerms() []*Term {
	return []*Term{
		{name: "pbcoreCoverage", path: "pbcoreCoverage"},
		{name: "event_place", path: "pbcoreCoverage/coverage", attrs: attrs("annotation", "Event Place"), indexAs: searchDisplay},
		{name: "event_date", path: "pbcoreCoverage/coverage", attrs: attrs("annotation", "Event Date"), indexAs: dateDisplay},
	}
}

func peopleTerms(cfg config.Config) []*Term {
	return []*Term{
		{name: "creator", path: "pbcoreCreator", presence: Inserted, children: []*Term{
			{name: "creator", path: "creator"},
			{name: "role", path: "creatorRole", attrs: attrs("ref", cfg.Vocabulary(config.VocabCreatorRole))},
		}},
		{name: "creator_name", ref: P("creator", "creator"), indexAs: searchDisplay},
		{name: "creator_role", ref: P("creator", "role"), indexAs: searchDisplay},

		{name: "contributor", path: "pbcoreContributor", presence: Inserted, children: []*Term{
			{name: "name", path: "contributor"},
			{name: "role", path: "contributorRole", attrs: attrs("source", cfg.Relator)},
		}},
		{name: "contributor_name", ref: P("contributor", "name"), indexAs: searchFacet},
		{name: "contributor_role", ref: P("contributor", "role"), indexAs: searchDisplay},

		{name: "publisher", path: "pbcorePublisher", presence: Inserted, children: []*Term{
			{name: "name", path: "publisher"},
			{name: "role", path: "publisherRole", attrs: attrs("source", "PBCore publisherRole")},
		}},
		{name: "publisher_name", ref: P("publisher", "name"), indexAs: searchFacetDisplay},
		{name: "publisher_role", ref: P("publisher", "role"), indexAs: searchDisplay},
	}
}

func rightsTerms(alias string) []*Term {
	return []*Term{
		{name: "pbcoreRightsSummary", path: "pbcoreRightsSummary", singleton: true, children: []*Term{
			{name: "rightsSummary", path: "rightsSummary"},
		}},
		{name: alias, ref: P("pbcoreRightsSummary", "rightsSummary"), indexAs: searchDisplay},
	}
}

// hoist wraps fields in a singleton container and exposes each field at the top
// level through a reference that carries the field's projections. The nested
// copies are stripped of projections so every field is indexed once.
func hoist(container string, fields []*Term) []*Term {
	wrapper := &Term{name: container, path: container, singleton: true}
	out := []*Term{wrapper}
	for _, f := range fields {
		nested := *f
		nested.indexAs = nil
		wrapper.children = append(wrapper.children, &nested)
		if len(f.children) == 0 {
			out = append(out, &Term{name: f.name, ref: P(container, f.name), indexAs: f.indexAs})
		}
	}
	return out
}

func concat(groups ...[]*Term) []*Term {
	var out []*Term
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func single(t ...*Term) []*Term {
	return t
}

