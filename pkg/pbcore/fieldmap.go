package pbcore

import (
	"bytes"
	"encoding/json"
)

// FieldMap is the flattened index representation of a document: an ordered
// mapping from index field name to an ordered list of values.
//
// Field order is the order in which fields were first added; value order is
// the order in which values were added. The zero value is ready to use.
type FieldMap struct {
	names  []string
	values map[string][]string
}

// NewFieldMap returns an empty FieldMap.
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string][]string)}
}

// Add appends values to field, registering the field name on first use.
// Adding no values is a no-op, so absent data never produces an empty entry.
func (m *FieldMap) Add(field string, values ...string) {
	if len(values) == 0 {
		return
	}
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, ok := m.values[field]; !ok {
		m.names = append(m.names, field)
	}
	m.values[field] = append(m.values[field], values...)
}

// Get returns the values of field, or nil when the field is absent.
func (m *FieldMap) Get(field string) []string {
	return m.values[field]
}

// Has reports whether field is present.
func (m *FieldMap) Has(field string) bool {
	_, ok := m.values[field]
	return ok
}

// Fields returns field names in insertion order.
func (m *FieldMap) Fields() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	return len(m.names)
}

// Each calls fn for every field in insertion order.
func (m *FieldMap) Each(fn func(field string, values []string)) {
	for _, name := range m.names {
		fn(name, m.values[name])
	}
}

// MarshalJSON encodes the map as a JSON object whose keys keep insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		vals, err := json.Marshal(m.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(vals)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
