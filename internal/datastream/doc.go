// Package datastream is the read/write accessor layer over one PBCore XML
// document. Every operation is addressed by a term path that the document's
// schema resolves to element locations; there are no per-field accessors.
//
// # Node creation
//
// Templated terms are created on write: updating index N of a term that has N
// matching nodes creates the chain of elements and sets the value. Terms that
// are Inserted (creator, contributor, publisher) are never created implicitly;
// writing past their last node fails with pbcore.ErrMissingNode until the
// container is created with Insert.
//
// Indices are positional snapshots. Every call re-queries the tree, so
// removing index k changes the index of later nodes only on the next call.
//
// A Document is not safe for concurrent mutation. Its schema may be shared.
package datastream
