// Package filesystem abstracts directory traversal so the scanner can run
// against the OS filesystem or an in-memory tree in tests.
package filesystem
