package pbcore

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the term layer, the index projector and the migration engine.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	err := doc.UpdateValues(terms.Path{"contributor_name"}, map[int]string{0: "Jane"})
//	if errors.Is(err, pbcore.ErrMissingNode) {
//	    // insert the contributor first
//	}
var (
	// ErrUnknownTerm indicates a term path with no matching term definition.
	ErrUnknownTerm = errors.New("unknown term")

	// ErrMissingNode indicates a write to a repeatable structured field index that
	// has not been created with Insert.
	ErrMissingNode = errors.New("missing node")

	// ErrNotFound indicates a removal targeted a node index that does not exist.
	ErrNotFound = errors.New("node not found")

	// ErrWrongVariant indicates a migration routine was invoked on a document that does
	// not match its required legacy shape. It is a contract error and is never retried.
	ErrWrongVariant = errors.New("wrong document variant")

	// ErrStructuralMismatch indicates the legacy document does not hold exactly one
	// instantiation. It matches ErrWrongVariant under errors.Is.
	ErrStructuralMismatch = fmt.Errorf("%w: structural mismatch", ErrWrongVariant)

	// ErrDateFormat indicates a date value that could not be parsed for indexing.
	ErrDateFormat = errors.New("invalid date format")

	// ErrAmbiguousCoverage indicates coverage siblings carry conflicting annotations,
	// so the annotation of an unannotated coverage element cannot be inferred.
	ErrAmbiguousCoverage = errors.New("ambiguous coverage annotation")

	// ErrInvalidXML indicates the document bytes could not be parsed.
	ErrInvalidXML = errors.New("invalid XML")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TermError reports a failed term operation together with the term path and index.
type TermError struct {
	Op    string // "update", "remove", "insert", "resolve"
	Path  string // dotted term path
	Index int    // -1 when not applicable
	Err   error
}

func (e *TermError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s %s[%d]: %v", e.Op, e.Path, e.Index, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TermError) Unwrap() error {
	return e.Err
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidXML):
		return ExitInvalidDocument
	case errors.Is(err, ErrWrongVariant):
		return ExitWrongVariant
	case errors.Is(err, ErrUnknownTerm), errors.Is(err, ErrMissingNode), errors.Is(err, ErrNotFound):
		return ExitTermError
	case errors.Is(err, ErrDateFormat), errors.Is(err, ErrAmbiguousCoverage):
		return ExitDataError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.HasPrefix(errStr, "missing required argument") ||
		strings.Contains(errStr, "arg(s), received") {
		return ExitUsageError
	}

	return ExitGeneralError
}
