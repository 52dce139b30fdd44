// Package migrate repairs documents written against the prior structural
// version of the schemas.
//
// Legacy description documents embedded exactly one physical instantiation;
// the current version keeps instantiations as separate documents. Split
// separates the two, the Clean* routines drop the relation and coverage
// elements the prior version wrote inconsistently.
//
// Calling a routine on a document of the wrong variant fails with
// pbcore.ErrWrongVariant. That is a caller bug and is never retried.
package migrate
