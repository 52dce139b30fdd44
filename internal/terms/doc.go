// Package terms defines the PBCore term schemas: immutable trees of term
// definitions mapping logical field names to XML node locations.
//
// # Term Definitions
//
// A Term names a field and locates it with a slash-separated element path
// relative to its parent scope, optionally narrowed by attribute constraints.
// Two terms may share an element path ("pbcoreTitle") and differ only by their
// constraints (titleType="Main" vs titleType="Series"); they never resolve to
// each other's nodes. A path starting with "@" addresses an attribute of the
// parent element instead of a child element.
//
// Compound fields nest child terms (contributor -> name, role). Reference
// terms (Ref) are aliases for another term path, so "contributor_name" reads and
// writes exactly the nodes of "contributor.name".
//
// # Presence
//
// Every term declares how its nodes come to exist:
//   - Templated: a write to the next free index creates the node (and any
//     missing ancestors). Scalar fields are Templated.
//   - Inserted: nodes exist only after an explicit insert. Repeatable
//     structured fields (creator, contributor, publisher) are Inserted; writing
//     to an index that was never inserted fails with pbcore.ErrMissingNode.
//
// Singleton containers (for example the pbcoreInstantiation wrapper inside a
// legacy document) are reused when a node is created beneath them; all other
// containers are created fresh for each new node.
//
// # Schemas
//
// A Schema is built once from configuration and never mutated afterwards, so it
// may be shared read-only between goroutines. NewRegistry builds all five
// schemas: the current Document and Instantiation, and the three legacy shapes
// handled by the migration engine.
package terms
