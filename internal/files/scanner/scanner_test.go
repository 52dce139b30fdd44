package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pbcore/internal/files/filesystem"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem()
	return NewScannerWithFS(fs), fs
}

func paths(sources []Source) []string {
	var out []string
	for _, s := range sources {
		out = append(out, filepath.ToSlash(s.Path))
	}
	return out
}

func TestNewScannerWithFS_Nil(t *testing.T) {
	assert.Panics(t, func() { NewScannerWithFS(nil) })
}

func TestScanDirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("/archive/b.xml", "<b/>")
	fs.AddFile("/archive/a.XML", "<a/>")
	fs.AddFile("/archive/notes.txt", "not a document")
	fs.AddFile("/archive/tapes/t1.xml", "<t1/>")
	fs.AddFile("/archive/.trash/old.xml", "<old/>")
	fs.AddFile("/archive/.hidden.xml", "<hidden/>")
	fs.AddFile("/elsewhere/c.xml", "<c/>")

	sources, err := s.ScanDirectory("/archive")
	require.NoError(t, err)
	assert.Equal(t, []string{"/archive/a.XML", "/archive/b.xml", "/archive/tapes/t1.xml"}, paths(sources))
	assert.Equal(t, "<a/>", string(sources[0].Content))
}

func TestScanDirectory_Errors(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("/archive/a.xml", "<a/>")

	_, err := s.ScanDirectory("/missing")
	assert.ErrorIs(t, err, filesystem.ErrNotExist)

	_, err = s.ScanDirectory("/archive/a.xml")
	assert.ErrorIs(t, err, filesystem.ErrNotDir)
}

func TestCollect_MixedArguments(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("/one.pbcore", "<one/>")
	fs.AddFile("/dir/x.xml", "<x/>")
	fs.AddFile("/dir/y.xml", "<y/>")

	sources, err := s.Collect("/one.pbcore", "/dir")
	require.NoError(t, err)
	assert.Equal(t, []string{"/one.pbcore", "/dir/x.xml", "/dir/y.xml"}, paths(sources))

	_, err = s.Collect("/nope.xml")
	assert.ErrorIs(t, err, filesystem.ErrNotExist)
}

func TestCollect_OSFileSystem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "asset.xml"), []byte("<asset/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("#"), 0644))

	sources, err := NewScanner().Collect(root)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, filepath.Join(root, "sub", "asset.xml"), sources[0].Path)
	assert.Equal(t, "<asset/>", string(sources[0].Content))
}

func TestIsDocument(t *testing.T) {
	assert.True(t, IsDocument("a.xml"))
	assert.True(t, IsDocument("dir/A.XML"))
	assert.False(t, IsDocument("a.xml.bak"))
	assert.False(t, IsDocument("xml"))
}
