// Package files locates PBCore documents on disk.
//
//   - filesystem: directory walking over the OS or an in-memory tree
//   - scanner: expands command-line arguments into XML document sources
package files
