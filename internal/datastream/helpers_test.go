package datastream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pbcore/internal/config"
	"github.com/vvka-141/pbcore/internal/terms"
)

func schemaFor(t *testing.T, name terms.Name) *terms.Schema {
	t.Helper()
	reg, err := terms.NewRegistry(config.Default())
	require.NoError(t, err)
	s, err := reg.Schema(name)
	require.NoError(t, err)
	return s
}

func newDoc(t *testing.T, name terms.Name) *Document {
	t.Helper()
	d, err := New(schemaFor(t, name))
	require.NoError(t, err)
	return d
}

func values(t *testing.T, d *Document, path ...string) []string {
	t.Helper()
	v, err := d.GetValues(terms.P(path...))
	require.NoError(t, err)
	return v
}
