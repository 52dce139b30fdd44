package terms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/config"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

func registry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(config.Default())
	require.NoError(t, err)
	return r
}

func TestNewRegistry_BuildsEverySchema(t *testing.T) {
	r := registry(t)
	for _, name := range r.Names() {
		s, err := r.Schema(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
		assert.NotEmpty(t, s.Terms())
	}

	_, err := r.Schema("nope")
	assert.Error(t, err)
}

func TestNameLegacy(t *testing.T) {
	assert.False(t, DocumentSchema.Legacy())
	assert.False(t, InstantiationSchema.Legacy())
	assert.True(t, LegacyDocumentSchema.Legacy())
	assert.True(t, LegacyDigitalDocumentSchema.Legacy())
	assert.True(t, LegacyInstantiationSchema.Legacy())
}

func TestResolve_FollowsReferences(t *testing.T) {
	s := registry(t).MustSchema(DocumentSchema)

	direct, err := s.Resolve(P("pbcoreRelation", "arch_coll"))
	require.NoError(t, err)
	alias, err := s.Resolve(P("collection"))
	require.NoError(t, err)
	assert.Equal(t, direct, alias)

	require.Len(t, alias, 2)
	assert.Equal(t, "pbcoreRelation", alias[0].path)
	assert.Equal(t, "pbcoreRelationIdentifier", alias[1].path)
}

func TestResolve_UnknownTerm(t *testing.T) {
	s := registry(t).MustSchema(DocumentSchema)

	for _, p := range []Path{P("missing"), P("contributor", "missing"), nil} {
		_, err := s.Resolve(p)
		assert.ErrorIs(t, err, pbcore.ErrUnknownTerm, p.String())
	}
}

func TestSchemaUsesConfiguredInstitution(t *testing.T) {
	cfg := config.Default()
	cfg.Institution = "Example Archive"
	r, err := NewRegistry(cfg)
	require.NoError(t, err)

	pid := r.MustSchema(DocumentSchema).Term("pid")
	require.NotNil(t, pid)
	assert.Contains(t, pid.attrs, attrs("source", "Example Archive")[0])
}

func TestSamePathDifferentConstraints(t *testing.T) {
	s := registry(t).MustSchema(DocumentSchema)

	title, series := s.Term("title"), s.Term("series")
	require.NotNil(t, title)
	require.NotNil(t, series)
	assert.Equal(t, title.path, series.path)
	assert.NotEqual(t, title.attrs, series.attrs)
}

func TestPresence(t *testing.T) {
	s := registry(t).MustSchema(DocumentSchema)

	assert.Equal(t, Inserted, s.Term("contributor").presence)
	assert.Equal(t, Templated, s.Term("title").presence)
	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "templated", Templated.String())
}

func TestLegacyDocumentHoistsInstantiation(t *testing.T) {
	s := registry(t).MustSchema(LegacyDocumentSchema)

	wrapper := s.Term("pbcoreInstantiation")
	require.NotNil(t, wrapper)
	assert.True(t, wrapper.singleton)

	nested := wrapper.Child("creation_date")
	require.NotNil(t, nested)
	assert.Empty(t, nested.indexAs)

	alias := s.Term("creation_date")
	require.NotNil(t, alias)
	assert.Equal(t, P("pbcoreInstantiation", "creation_date"), alias.ref)
	assert.Equal(t, []coerce.Kind{coerce.Date, coerce.Displayable}, alias.indexAs)
}

func TestTermAccessorsReturnCopies(t *testing.T) {
	s := registry(t).MustSchema(DocumentSchema)

	title := s.Term("title")
	got := title.Attrs()
	require.NotEmpty(t, got)
	got[0].Value = "Changed"
	assert.Equal(t, "Main", title.Attrs()[0].Value)

	contributor := s.Term("contributor")
	children := contributor.Children()
	children[0] = nil
	assert.NotNil(t, contributor.Children()[0])

	alias := s.Term("contributor_name")
	ref := alias.Ref()
	ref[0] = "publisher"
	assert.Equal(t, P("contributor", "name"), alias.Ref())

	kinds := alias.IndexAs()
	kinds[0] = coerce.Date
	assert.NotEqual(t, coerce.Date, alias.IndexAs()[0])

	assert.Equal(t, "pbcoreTitle", title.Path())
	assert.Equal(t, "title", title.Name())
	assert.Equal(t, Inserted, contributor.Presence())
	assert.False(t, title.Singleton())

	all := s.Terms()
	all[0] = nil
	assert.NotNil(t, s.Terms()[0])
}

func TestWalk_DeclarationOrder(t *testing.T) {
	s := registry(t).MustSchema(DocumentSchema)

	var seen []string
	s.Walk(func(p Path, _ *Term) { seen = append(seen, p.String()) })

	require.NotEmpty(t, seen)
	assert.Equal(t, "pid", seen[0])
	assert.Less(t, indexOf(seen, "contributor"), indexOf(seen, "contributor.name"))
	assert.Less(t, indexOf(seen, "contributor.name"), indexOf(seen, "contributor.role"))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestBuild_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		terms []*Term
		seeds []Seed
	}{
		{"duplicate", []*Term{{name: "a", path: "x"}, {name: "a", path: "y"}}, nil},
		{"invalid name", []*Term{{name: "a-b", path: "x"}}, nil},
		{"no path", []*Term{{name: "a"}}, nil},
		{"attribute with children", []*Term{{name: "a", path: "@x", children: []*Term{{name: "b", path: "y"}}}}, nil},
		{"bad kind", []*Term{{name: "a", path: "x", indexAs: kinds("bogus")}}, nil},
		{"dangling ref", []*Term{{name: "a", ref: P("b")}}, nil},
		{"ref cycle", []*Term{{name: "a", ref: P("b")}, {name: "b", ref: P("a")}}, nil},
		{"bad seed", []*Term{{name: "a", path: "x"}}, []Seed{{Path: P("b")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build("test", "root", nil, tt.terms, tt.seeds)
			assert.Error(t, err)
		})
	}

	_, err := Build("test", "", nil, []*Term{{name: "a", path: "x"}}, nil)
	assert.Error(t, err)
	assert.Panics(t, func() { MustBuild("test", "", nil, nil, nil) })
}
