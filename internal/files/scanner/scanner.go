package scanner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pbcore/internal/files/filesystem"
)

// Source is one document found by the scanner.
type Source struct {
	// Path is the argument for files given directly, or the directory
	// argument joined with the path below it.
	Path    string
	Content []byte
}

// Scanner collects document sources. It is safe for concurrent use when the
// provider is.
type Scanner struct {
	fs filesystem.Provider
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fs: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner over a custom provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.Provider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fs: fsProvider}
}

// Collect returns the sources named by paths in argument order. A file
// argument is read whatever its extension; a directory argument contributes
// the XML documents below it in lexical order.
func (s *Scanner) Collect(paths ...string) ([]Source, error) {
	var out []Source
	for _, p := range paths {
		info, err := s.fs.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		if !info.IsDir() {
			content, err := s.fs.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", p, err)
			}
			out = append(out, Source{Path: p, Content: content})
			continue
		}

		found, err := s.ScanDirectory(p)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// ScanDirectory recursively collects the XML documents below root.
func (s *Scanner) ScanDirectory(root string) ([]Source, error) {
	dir, err := s.fs.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var out []Source
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %s: %w", root, err)
		}
		rel := file.RelativePath()
		if hidden(rel) || file.Info().IsDir() || !IsDocument(rel) {
			return nil
		}
		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file.Path(), err)
		}
		out = append(out, Source{Path: filepath.Join(root, filepath.FromSlash(rel)), Content: content})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsDocument reports whether name has an .xml extension.
func IsDocument(name string) bool {
	return strings.EqualFold(path.Ext(name), ".xml")
}

func hidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
