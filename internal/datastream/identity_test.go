package datastream

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pbcore/internal/terms"
)

func TestFallbackPID(t *testing.T) {
	a := FallbackPID("./Tapes/A1.xml")
	assert.Equal(t, a, FallbackPID("tapes/a1.xml"))
	assert.NotEqual(t, a, FallbackPID("tapes/a2.xml"))

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestIdentify(t *testing.T) {
	d := newDoc(t, terms.DocumentSchema)
	assert.Equal(t, FallbackPID("a.xml"), d.Identify("a.xml"))

	require.NoError(t, d.UpdateValues(terms.P("pid"), map[int]string{0: " rrhof:42 "}))
	pid, ok := d.PID()
	assert.True(t, ok)
	assert.Equal(t, "rrhof:42", pid)
	assert.Equal(t, "rrhof:42", d.Identify("a.xml"))
}

func TestPID_SchemaWithoutPID(t *testing.T) {
	d := newDoc(t, terms.InstantiationSchema)
	_, ok := d.PID()
	assert.False(t, ok)
}
