package filesystem

import (
	"errors"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo.
type FileInfo = fs.FileInfo

// ErrNotExist is returned by Stat, ReadFile and Open for missing paths.
var ErrNotExist = fs.ErrNotExist

// ErrNotDir is returned by Open when the path is a regular file.
var ErrNotDir = errors.New("not a directory")

// File is a regular file or directory discovered by Walk.
type File interface {
	// Path returns the path as reachable through the provider.
	Path() string

	// RelativePath returns the slash-separated path below the walked root.
	RelativePath() string

	Info() FileInfo

	ReadContent() ([]byte, error)
}

// Directory is a directory that can be walked.
type Directory interface {
	Path() string

	// Walk calls fn for every entry below the directory in lexical order.
	// Walking stops at the first error fn returns.
	Walk(fn func(File, error) error) error
}

// Provider opens directories and reads files.
type Provider interface {
	Open(path string) (Directory, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
}
