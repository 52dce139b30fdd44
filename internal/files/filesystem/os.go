package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type osFile struct {
	path    string
	relPath string
	info    fs.FileInfo
}

func (f *osFile) Path() string         { return f.path }
func (f *osFile) RelativePath() string { return f.relPath }
func (f *osFile) Info() FileInfo       { return f.info }

func (f *osFile) ReadContent() ([]byte, error) {
	return os.ReadFile(f.path)
}

type osDirectory struct {
	path string
}

func (d *osDirectory) Path() string { return d.path }

func (d *osDirectory) Walk(fn func(File, error) error) error {
	return filepath.WalkDir(d.path, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fn(nil, walkErr)
		}
		if path == d.path {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return fn(nil, err)
		}
		rel, err := filepath.Rel(d.path, path)
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get relative path: %w", err))
		}
		return fn(&osFile{path: path, relPath: filepath.ToSlash(rel), info: info}, nil)
	})
}

// OSFileSystem implements Provider for the OS filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotDir)
	}
	return &osDirectory{path: filepath.Clean(path)}, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}
