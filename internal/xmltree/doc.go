// Package xmltree is the XML tree collaborator used by the term layer and the
// migration engine. It wraps github.com/beevik/etree with the handful of
// operations those layers need:
//
//   - Parse / Serialize: bytes to tree and back (indented, with XML declaration)
//   - Select: child element lookup by element path plus attribute-value constraints
//   - FirstWithAttr: first child that carries a given attribute
//   - Text / SetText: leaf text content
//   - Create / Append: positional node creation
//   - Remove: node removal
//
// Matching is on local element names; namespace prefixes are ignored because
// PBCore documents are written without element prefixes.
package xmltree
