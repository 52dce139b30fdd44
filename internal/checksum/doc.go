// Package checksum hashes serialized documents so unchanged documents can be
// skipped on re-index.
//
// Two checksums are available:
//
//   - Raw: hash of the exact bytes.
//   - Normalized: hash after dropping XML comments and collapsing formatting
//     whitespace, so re-indenting a document does not change its identity.
//
// Text inside CDATA sections is hashed verbatim.
//
//	sum := checksum.New().Calculate(data)
//
// SHA256 is safe for concurrent use.
package checksum
