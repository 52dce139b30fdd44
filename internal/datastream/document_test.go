package datastream

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

func TestNew_AppliesTemplate(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	assert.Equal(t, "pbcoreDescriptionDocument", d.Root().Tag)
	assert.False(t, d.Dirty())
	assert.Equal(t, []string{""}, values(t, d, "pid"))

	pid := d.Root().SelectElement("pbcoreIdentifier")
	require.NotNil(t, pid)
	assert.Equal(t, "PID", pid.SelectAttrValue("annotation", ""))
	assert.Equal(t, "Rock and Roll Hall of Fame and Museum", pid.SelectAttrValue("source", ""))
}

func TestNew_LegacyDocumentSeedsOneInstantiation(t *testing.T) {
	d := newDoc(t, terms.LegacyDocumentSchema)

	nodes, err := d.FindNodes(terms.P("pbcoreInstantiation"))
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
	assert.Equal(t, []string{"Moving image"}, values(t, d, "media_type"))
	assert.Equal(t, []string{"Original"}, values(t, d, "generation"))
	assert.Equal(t, []string{"Color"}, values(t, d, "colors"))
}

func TestGetValues_NoMatchIsEmpty(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)
	assert.Empty(t, values(t, d, "title"))
	assert.Empty(t, values(t, d, "contributor", "name"))
}

func TestGetValues_UnknownTerm(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	_, err := d.GetValues(terms.P("no_such_field"))
	assert.ErrorIs(t, err, pbcore.ErrUnknownTerm)

	_, err = d.GetValues(terms.P("contributor", "nickname"))
	assert.ErrorIs(t, err, pbcore.ErrUnknownTerm)
}

func TestUpdateValues_CreatesTemplatedLeaf(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	require.NoError(t, d.UpdateValues(terms.P("title"), map[int]string{0: "Main Title"}))
	assert.True(t, d.Dirty())
	assert.Equal(t, []string{"Main Title"}, values(t, d, "title"))

	require.NoError(t, d.UpdateValues(terms.P("title"), map[int]string{0: "Renamed", 1: "Second"}))
	assert.Equal(t, []string{"Renamed", "Second"}, values(t, d, "title"))
}

func TestUpdateValues_ConstraintsAreNotConflated(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	require.NoError(t, d.UpdateValues(terms.P("title"), map[int]string{0: "Main"}))
	require.NoError(t, d.UpdateValues(terms.P("series"), map[int]string{0: "Series"}))
	require.NoError(t, d.UpdateValues(terms.P("episode"), map[int]string{0: "Episode"}))

	assert.Equal(t, []string{"Main"}, values(t, d, "title"))
	assert.Equal(t, []string{"Series"}, values(t, d, "series"))
	assert.Equal(t, []string{"Episode"}, values(t, d, "episode"))

	titles := d.Root().SelectElements("pbcoreTitle")
	require.Len(t, titles, 3)
	assert.Equal(t, "Main", titles[0].SelectAttrValue("titleType", ""))
	assert.Equal(t, "Series", titles[1].SelectAttrValue("titleType", ""))
}

func TestUpdateValues_GapIsMissingNode(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	err := d.UpdateValues(terms.P("title"), map[int]string{2: "too far"})
	require.ErrorIs(t, err, pbcore.ErrMissingNode)

	var termErr *pbcore.TermError
	require.True(t, errors.As(err, &termErr))
	assert.Equal(t, 2, termErr.Index)
	assert.Equal(t, "title", termErr.Path)
	assert.False(t, d.Dirty())
}

func TestUpdateValues_FailureWritesNothing(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)
	_, _, err := d.Insert(terms.P("contributor"), "Jane Doe", "Host")
	require.NoError(t, err)
	d.MarkClean()

	err = d.UpdateValues(terms.P("contributor", "name"), map[int]string{0: "Changed", 3: "Nope"})
	require.ErrorIs(t, err, pbcore.ErrMissingNode)
	assert.Equal(t, []string{"Jane Doe"}, values(t, d, "contributor", "name"))
	assert.False(t, d.Dirty())

	err = d.UpdateValues(terms.P("title"), map[int]string{0: "First", 2: "Gap"})
	require.ErrorIs(t, err, pbcore.ErrMissingNode)
	assert.Empty(t, values(t, d, "title"))
	assert.False(t, d.Dirty())
}

func TestUpdateValues_CreatesContiguousRun(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	require.NoError(t, d.UpdateValues(terms.P("title"), map[int]string{1: "Second", 0: "First"}))
	assert.Equal(t, []string{"First", "Second"}, values(t, d, "title"))
	assert.True(t, d.Dirty())
}

func TestUpdateValues_InsertedTermRequiresInsert(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	err := d.UpdateValues(terms.P("contributor", "name"), map[int]string{0: "Alice"})
	assert.ErrorIs(t, err, pbcore.ErrMissingNode)

	_, _, err = d.Insert(terms.P("contributor"))
	require.NoError(t, err)
	require.NoError(t, d.UpdateValues(terms.P("contributor", "name"), map[int]string{0: "Alice"}))
	assert.Equal(t, []string{"Alice"}, values(t, d, "contributor_name"))
}

func TestUpdateValues_Attribute(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	require.NoError(t, d.UpdateValues(terms.P("description"), map[int]string{0: "About"}))
	require.NoError(t, d.UpdateValues(terms.P("description", "type"), map[int]string{0: "Program"}))

	assert.Equal(t, []string{"Program"}, values(t, d, "description", "type"))
	assert.Equal(t, "Program", d.Root().SelectElement("pbcoreDescription").SelectAttrValue("descriptionType", ""))
}

func TestReferenceAliasIsEquivalent(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	require.NoError(t, d.UpdateValues(terms.P("collection"), map[int]string{0: "ArchColl1"}))
	assert.Equal(t, []string{"ArchColl1"}, values(t, d, "pbcoreRelation", "arch_coll"))
	assert.Empty(t, values(t, d, "archival_series"))

	require.NoError(t, d.UpdateValues(terms.P("pbcoreRelation", "arch_coll"), map[int]string{0: "ArchColl2"}))
	assert.Equal(t, []string{"ArchColl2"}, values(t, d, "collection"))
}

func TestInsert_IndicesFollowCallOrder(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	for i, name := range []string{"Alice", "Bob", "Carol"} {
		_, idx, err := d.Insert(terms.P("contributor"), name, "Producer")
		require.NoError(t, err)
		assert.Equal(t, i, idx)

		// other node types interleaved between contributors
		_, _, err = d.Insert(terms.P("publisher"), "Pub "+name)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, values(t, d, "contributor", "name"))
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, values(t, d, "contributor_name"))
	assert.Equal(t, []string{"Producer", "Producer", "Producer"}, values(t, d, "contributor_role"))
	assert.Equal(t, []string{"Pub Alice", "Pub Bob", "Pub Carol"}, values(t, d, "publisher_name"))
	assert.Equal(t, []string{"", "", ""}, values(t, d, "publisher_role"))
}

func TestInsert_TooManyValues(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	_, _, err := d.Insert(terms.P("contributor"), "a", "b", "c")
	assert.Error(t, err)

	_, _, err = d.Insert(terms.P("title"), "a", "b")
	assert.Error(t, err)
	assert.False(t, d.Dirty())
}

func TestInsert_Coverage(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	_, idx, err := d.Insert(terms.P("event_date"), "2012")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	_, idx, err = d.Insert(terms.P("event_place"), "Cleveland")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	assert.Equal(t, []string{"2012"}, values(t, d, "event_date"))
	assert.Equal(t, []string{"Cleveland"}, values(t, d, "event_place"))
	assert.Len(t, d.Root().SelectElements("pbcoreCoverage"), 2)
}

func TestInsertRelation(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)

	_, _, err := d.InsertRelation("ArchColl1", "Archival Collection")
	require.NoError(t, err)
	assert.Equal(t, []string{"ArchColl1"}, values(t, d, "collection"))

	_, _, err = d.InsertRelation("x", "Nonexistent Annotation")
	assert.ErrorIs(t, err, pbcore.ErrUnknownTerm)
}

func TestRemoveNode(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, _, err := d.Insert(terms.P("contributor"), name)
		require.NoError(t, err)
	}
	d.MarkClean()

	require.NoError(t, d.RemoveNode(terms.P("contributor"), 1))
	assert.True(t, d.Dirty())
	assert.Equal(t, []string{"Alice", "Carol"}, values(t, d, "contributor_name"))

	err := d.RemoveNode(terms.P("contributor"), 2)
	assert.ErrorIs(t, err, pbcore.ErrNotFound)
	err = d.RemoveNode(terms.P("contributor"), -1)
	assert.ErrorIs(t, err, pbcore.ErrNotFound)
}

func TestRemoveNode_Attribute(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)
	require.NoError(t, d.UpdateValues(terms.P("description"), map[int]string{0: "About"}))
	require.NoError(t, d.UpdateValues(terms.P("description", "type"), map[int]string{0: "Program"}))

	require.NoError(t, d.RemoveNode(terms.P("description", "type"), 0))
	assert.Empty(t, values(t, d, "description", "type"))
	assert.Equal(t, []string{"About"}, values(t, d, "description"))
}

func TestSerializeAndLoad(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)
	require.NoError(t, d.UpdateValues(terms.P("pid"), map[int]string{0: "rrhof:1"}))
	_, _, err := d.Insert(terms.P("contributor"), "Alice", "Host")
	require.NoError(t, err)

	data, err := d.Serialize()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))

	loaded, err := Load(d.Schema(), data)
	require.NoError(t, err)
	assert.False(t, loaded.Dirty())
	assert.Equal(t, []string{"rrhof:1"}, values(t, loaded, "pid"))
	assert.Equal(t, []string{"Alice"}, values(t, loaded, "contributor_name"))
	assert.Equal(t, []string{"Host"}, values(t, loaded, "contributor_role"))
}

func TestLoad_WrongRoot(t *testing.T) {
	_, err := Load(schemaFor(t, terms.DocumentSchema), []byte(`<pbcoreInstantiation/>`))
	assert.ErrorIs(t, err, pbcore.ErrWrongVariant)

	_, err = Load(schemaFor(t, terms.DocumentSchema), []byte(`<<bad`))
	assert.ErrorIs(t, err, pbcore.ErrInvalidXML)
}

func TestClone_IsIndependent(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)
	c := d.Clone()

	require.NoError(t, c.UpdateValues(terms.P("title"), map[int]string{0: "Only in clone"}))
	assert.Empty(t, values(t, d, "title"))
	assert.False(t, d.Dirty())
}
