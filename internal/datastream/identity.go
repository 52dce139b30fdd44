package datastream

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/pbcore/internal/terms"
)

// NamespaceDocumentIdentity is the UUID v5 namespace for fallback document
// identifiers, derived from "pbcore/document-identity/v1" under the URL namespace.
var NamespaceDocumentIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pbcore/document-identity/v1"))

// FallbackPID derives a stable identifier for a document that carries no PID,
// from its source name. Names are compared case-insensitively and without a
// leading "./".
//
//	FallbackPID("./Tapes/A1.xml") == FallbackPID("tapes/a1.xml")
func FallbackPID(name string) string {
	normalized := strings.ToLower(filepath.ToSlash(name))
	normalized = strings.TrimPrefix(normalized, "./")
	return uuid.NewSHA1(NamespaceDocumentIdentity, []byte(normalized)).String()
}

// PID returns the first non-empty pid value, if the schema defines one.
func (d *Document) PID() (string, bool) {
	if d.schema.Term("pid") == nil {
		return "", false
	}
	values, err := d.GetValues(terms.P("pid"))
	if err != nil {
		return "", false
	}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}

// Identify returns the document's PID, or the fallback derived from name.
func (d *Document) Identify(name string) string {
	if pid, ok := d.PID(); ok {
		return pid
	}
	return FallbackPID(name)
}
