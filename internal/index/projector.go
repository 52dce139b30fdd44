// Package index flattens documents into index field maps and hands them to a
// Sink.
package index

import (
	"fmt"
	"strings"

	"github.com/vvka-141/pbcore/internal/coerce"
	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Project walks every term of the document's schema that declares index
// kinds and returns the resulting field map. Field order follows term
// declaration order, value order follows document order. The document is
// only read.
//
// A date value that cannot be normalized fails the whole projection with
// pbcore.ErrDateFormat.
func Project(d *datastream.Document) (*pbcore.FieldMap, error) {
	fields := pbcore.NewFieldMap()
	var projectErr error
	d.Schema().Walk(func(p terms.Path, t *terms.Term) {
		if projectErr != nil || len(t.IndexAs()) == 0 {
			return
		}
		values, err := d.GetValues(p)
		if err != nil {
			projectErr = err
			return
		}
		if len(values) == 0 {
			return
		}
		base := FieldBase(p)
		for _, kind := range t.IndexAs() {
			name, err := coerce.FieldName(base, kind)
			if err != nil {
				projectErr = err
				return
			}
			out, err := coerce.Apply(kind, values)
			if err != nil {
				projectErr = fmt.Errorf("index %s: %w", name, err)
				return
			}
			fields.Add(name, out...)
		}
	})
	if projectErr != nil {
		return nil, projectErr
	}
	return fields, nil
}

// FieldBase is the index name stem of a term: its own name at the top level,
// the underscore-joined path below it.
func FieldBase(p terms.Path) string {
	return strings.Join(p, "_")
}
