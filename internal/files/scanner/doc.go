// Package scanner expands file and directory arguments into the PBCore XML
// documents they name.
//
// Directories are walked recursively. Only files with an .xml extension are
// collected, and entries whose name starts with a dot are skipped together
// with everything below them.
package scanner
