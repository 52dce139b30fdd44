package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

type memoryInfo struct {
	name  string
	size  int64
	isDir bool
}

func (i *memoryInfo) Name() string { return i.name }
func (i *memoryInfo) Size() int64  { return i.size }
func (i *memoryInfo) Mode() fs.FileMode {
	if i.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (i *memoryInfo) ModTime() time.Time { return time.Time{} }
func (i *memoryInfo) IsDir() bool        { return i.isDir }
func (i *memoryInfo) Sys() any           { return nil }

type memoryFile struct {
	path    string
	relPath string
	info    *memoryInfo
	content []byte
}

func (f *memoryFile) Path() string         { return f.path }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.content, nil
}

// MemoryFileSystem is a Provider over files held in memory. Directories exist
// implicitly as parents of added files. Paths are slash-separated; relative
// paths resolve against "/".
type MemoryFileSystem struct {
	files map[string][]byte
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string][]byte)}
}

// AddFile adds or replaces a file.
func (m *MemoryFileSystem) AddFile(name, content string) {
	m.files[clean(name)] = []byte(content)
}

func clean(name string) string {
	return path.Clean("/" + name)
}

func (m *MemoryFileSystem) isDir(p string) bool {
	if p == "/" {
		return true
	}
	for name := range m.files {
		if strings.HasPrefix(name, p+"/") {
			return true
		}
	}
	return false
}

func (m *MemoryFileSystem) Open(name string) (Directory, error) {
	p := clean(name)
	if _, ok := m.files[p]; ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotDir)
	}
	if !m.isDir(p) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return &memoryDirectory{fs: m, path: p}, nil
}

func (m *MemoryFileSystem) ReadFile(name string) ([]byte, error) {
	content, ok := m.files[clean(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return content, nil
}

func (m *MemoryFileSystem) Stat(name string) (FileInfo, error) {
	p := clean(name)
	if content, ok := m.files[p]; ok {
		return &memoryInfo{name: path.Base(p), size: int64(len(content))}, nil
	}
	if m.isDir(p) {
		return &memoryInfo{name: path.Base(p), isDir: true}, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
}

type memoryDirectory struct {
	fs   *MemoryFileSystem
	path string
}

func (d *memoryDirectory) Path() string { return d.path }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	prefix := strings.TrimSuffix(d.path, "/") + "/"

	entries := make(map[string]*memoryFile)
	for name, content := range d.fs.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rel := strings.TrimPrefix(name, prefix)
		entries[rel] = &memoryFile{path: name, relPath: rel, content: content,
			info: &memoryInfo{name: path.Base(name), size: int64(len(content))}}

		for dir := path.Dir(rel); dir != "."; dir = path.Dir(dir) {
			if _, seen := entries[dir]; !seen {
				entries[dir] = &memoryFile{path: prefix + dir, relPath: dir,
					info: &memoryInfo{name: path.Base(dir), isDir: true}}
			}
		}
	}

	rels := make([]string, 0, len(entries))
	for rel := range entries {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	for _, rel := range rels {
		if err := fn(entries[rel], nil); err != nil {
			return err
		}
	}
	return nil
}
