package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pbcore/internal/config"
	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/internal/logging"
	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/internal/xmltree"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

const instantiationXML = `
  <pbcoreInstantiation>
    <instantiationIdentifier annotation="Barcode">39156042439369</instantiationIdentifier>
    <instantiationDate dateType="created">2012</instantiationDate>
    <instantiationColors>Color</instantiationColors>
    <instantiationRelation>
      <instantiationRelationIdentifier>x</instantiationRelationIdentifier>
      <instantiationRelationType>Has Format</instantiationRelationType>
    </instantiationRelation>
  </pbcoreInstantiation>`

const legacyXML = `<?xml version="1.0" encoding="UTF-8"?>
<pbcoreDescriptionDocument>
  <pbcoreIdentifier source="Rock and Roll Hall of Fame and Museum" annotation="PID">rrhof:1</pbcoreIdentifier>
  <pbcoreTitle titleType="Main">Concert</pbcoreTitle>
  <pbcoreRelation>
    <pbcoreRelationIdentifier annotation="Event Series">Series A</pbcoreRelationIdentifier>
  </pbcoreRelation>
  <pbcoreRelation>
    <pbcoreRelationIdentifier annotation="Archival Collection">ArchColl1</pbcoreRelationIdentifier>
  </pbcoreRelation>
  <pbcoreRelation>
    <pbcoreRelationIdentifier annotation="Accession Number">ACC-9</pbcoreRelationIdentifier>
  </pbcoreRelation>
  <pbcoreRelation>
    <pbcoreRelationType>Is Part Of</pbcoreRelationType>
  </pbcoreRelation>
  <pbcoreRelationIdentifier annotation="Archival Series">orphan</pbcoreRelationIdentifier>
  <instantiationRelationIdentifier>orphan2</instantiationRelationIdentifier>
  <pbcoreCoverage>
    <coverage annotation="Event Date">2012-04-14</coverage>
    <coverage>2012-04-15</coverage>
  </pbcoreCoverage>
  <pbcoreCoverage>
    <coverage annotation="Event Place">Cleveland</coverage>
  </pbcoreCoverage>` + instantiationXML + `
</pbcoreDescriptionDocument>`

type fixture struct {
	registry *terms.Registry
	log      *logging.Recorder
	m        *Migrator
}

func setup(t *testing.T) *fixture {
	t.Helper()
	reg, err := terms.NewRegistry(config.Default())
	require.NoError(t, err)
	log := logging.NewRecorder()
	return &fixture{registry: reg, log: log, m: New(reg, log)}
}

func (f *fixture) load(t *testing.T, name terms.Name, xml string) *datastream.Document {
	t.Helper()
	d, err := datastream.Load(f.registry.MustSchema(name), []byte(xml))
	require.NoError(t, err)
	return d
}

func count(d *datastream.Document, tag string) int {
	return len(xmltree.Descendants(d.Root(), tag))
}

func values(t *testing.T, d *datastream.Document, path ...string) []string {
	t.Helper()
	v, err := d.GetValues(terms.P(path...))
	require.NoError(t, err)
	return v
}

func TestSplit(t *testing.T) {
	f := setup(t)
	d := f.load(t, terms.LegacyDocumentSchema, legacyXML)

	doc, inst, err := f.m.Split(d)
	require.NoError(t, err)

	assert.Equal(t, terms.DocumentSchema, doc.Variant())
	assert.Zero(t, count(doc, "pbcoreInstantiation"))
	assert.Equal(t, []string{"Concert"}, values(t, doc, "title"))
	assert.True(t, doc.Dirty())

	assert.Equal(t, terms.InstantiationSchema, inst.Variant())
	assert.Equal(t, "pbcoreInstantiation", inst.Root().Tag)
	assert.Zero(t, count(inst, "instantiationRelation"))
	colors := inst.Root().SelectElement("instantiationColors")
	require.NotNil(t, colors)
	assert.Equal(t, pbcore.SourceInstantiationColors, colors.SelectAttrValue("source", ""))
	assert.Equal(t, []string{"39156042439369"}, values(t, inst, "barcode"))
	assert.Equal(t, []string{"2012"}, values(t, inst, "creation_date"))
	assert.True(t, inst.Dirty())
}

func TestToPhysicalInstantiation_LeavesInputAlone(t *testing.T) {
	f := setup(t)
	d := f.load(t, terms.LegacyDocumentSchema, legacyXML)

	_, err := f.m.ToPhysicalInstantiation(d)
	require.NoError(t, err)
	assert.Equal(t, 1, count(d, "pbcoreInstantiation"))
	assert.Equal(t, 1, count(d, "instantiationRelation"))
	assert.False(t, d.Dirty())
}

func TestToPhysicalInstantiation_RequiresExactlyOne(t *testing.T) {
	f := setup(t)

	none := strings.Replace(legacyXML, instantiationXML, "", 1)
	two := strings.Replace(legacyXML, instantiationXML, instantiationXML+instantiationXML, 1)

	for name, xml := range map[string]string{"zero": none, "two": two} {
		t.Run(name, func(t *testing.T) {
			d := f.load(t, terms.LegacyDocumentSchema, xml)
			_, err := f.m.ToPhysicalInstantiation(d)
			assert.ErrorIs(t, err, pbcore.ErrWrongVariant)
			assert.ErrorIs(t, err, pbcore.ErrStructuralMismatch)

			_, _, err = f.m.Split(d)
			assert.ErrorIs(t, err, pbcore.ErrWrongVariant)
		})
	}
}

func TestConversions_WrongVariant(t *testing.T) {
	f := setup(t)
	current := f.load(t, terms.DocumentSchema, `<pbcoreDescriptionDocument/>`)

	_, err := f.m.ToPhysicalInstantiation(current)
	assert.ErrorIs(t, err, pbcore.ErrWrongVariant)
	assert.ErrorIs(t, f.m.ToInstantiation(current), pbcore.ErrWrongVariant)

	inst := f.load(t, terms.InstantiationSchema, `<pbcoreInstantiation/>`)
	assert.ErrorIs(t, f.m.ToDocument(inst), pbcore.ErrWrongVariant)
	assert.ErrorIs(t, f.m.CleanDocument(inst), pbcore.ErrWrongVariant)
	assert.ErrorIs(t, f.m.CleanDigitalDocument(inst), pbcore.ErrWrongVariant)
}

func TestToDocument_AlreadyCurrentIsNoop(t *testing.T) {
	f := setup(t)
	d := f.load(t, terms.LegacyDocumentSchema, legacyXML)

	require.NoError(t, f.m.ToDocument(d))
	before, err := d.Clone().Serialize()
	require.NoError(t, err)

	require.NoError(t, f.m.ToDocument(d))
	after, err := d.Clone().Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestToInstantiation(t *testing.T) {
	f := setup(t)
	d := f.load(t, terms.LegacyInstantiationSchema,
		`<pbcoreDescriptionDocument><pbcoreIdentifier>x</pbcoreIdentifier>`+instantiationXML+`</pbcoreDescriptionDocument>`)

	require.NoError(t, f.m.ToInstantiation(d))
	assert.Equal(t, "pbcoreInstantiation", d.Root().Tag)
	assert.Equal(t, terms.InstantiationSchema, d.Variant())
	assert.Zero(t, count(d, "pbcoreIdentifier"))
	assert.Equal(t, []string{"Color"}, values(t, d, "colors"))
	assert.True(t, d.Dirty())

	require.NoError(t, f.m.ToInstantiation(d))
	assert.Equal(t, "pbcoreInstantiation", d.Root().Tag)
}

func TestUpgrade(t *testing.T) {
	f := setup(t)

	docs, err := f.m.Upgrade(f.load(t, terms.LegacyDocumentSchema, legacyXML))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, terms.DocumentSchema, docs[0].Variant())
	assert.Equal(t, terms.InstantiationSchema, docs[1].Variant())
	assert.Equal(t, 1, count(docs[0], "pbcoreRelation"))

	digital := strings.Replace(legacyXML, instantiationXML, "", 1)
	docs, err = f.m.Upgrade(f.load(t, terms.LegacyDigitalDocumentSchema, digital))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, terms.DocumentSchema, docs[0].Variant())
	assert.Equal(t, []string{"ArchColl1"}, values(t, docs[0], "collection"))

	current := f.load(t, terms.DocumentSchema, `<pbcoreDescriptionDocument/>`)
	docs, err = f.m.Upgrade(current)
	require.NoError(t, err)
	assert.Equal(t, []*datastream.Document{current}, docs)
	assert.False(t, current.Dirty())
}
