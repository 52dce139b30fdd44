// Package coerce is the type coercion table used by index projection: it maps a
// field kind token to the suffix of the index field name and to the transform
// applied to each raw value. It holds no state.
package coerce

import (
	"fmt"
	"regexp"
	"time"

	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Kind is an index-projection kind token.
type Kind string

// Searchable kinds, selected by value type.
const (
	Default Kind = "default"
	Date    Kind = "date"
	String  Kind = "string"
	Text    Kind = "text"
	Symbol  Kind = "symbol"
	Integer Kind = "integer"
	Long    Kind = "long"
	Boolean Kind = "boolean"
	Float   Kind = "float"
	Double  Kind = "double"
)

// Non-typed projection kinds.
const (
	Displayable         Kind = "displayable"
	Facetable           Kind = "facetable"
	Sortable            Kind = "sortable"
	UnstemmedSearchable Kind = "unstemmed_searchable"
)

// Transform converts one raw node value into its indexed form.
type Transform func(value string) (string, error)

// Rule is one row of the table.
type Rule struct {
	Suffix    string
	Transform Transform
}

func passThrough(value string) (string, error) {
	return value, nil
}

var table = map[Kind]Rule{
	Default:             {"_t", passThrough},
	Date:                {"_dt", NormalizeDate},
	String:              {"_t", passThrough},
	Text:                {"_t", passThrough},
	Symbol:              {"_s", passThrough},
	Integer:             {"_i", passThrough},
	Long:                {"_l", passThrough},
	Boolean:             {"_b", passThrough},
	Float:               {"_f", passThrough},
	Double:              {"_d", passThrough},
	Displayable:         {"_display", passThrough},
	Facetable:           {"_facet", passThrough},
	Sortable:            {"_sort", passThrough},
	UnstemmedSearchable: {"_unstem_search", passThrough},
}

// Lookup returns the rule for kind.
func Lookup(kind Kind) (Rule, bool) {
	r, ok := table[kind]
	return r, ok
}

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{
		Default, Date, String, Text, Symbol, Integer, Long, Boolean, Float, Double,
		Displayable, Facetable, Sortable, UnstemmedSearchable,
	}
}

// FieldName returns the index field name for term under kind.
func FieldName(term string, kind Kind) (string, error) {
	r, ok := table[kind]
	if !ok {
		return "", fmt.Errorf("unsupported index kind %q", kind)
	}
	return term + r.Suffix, nil
}

// Apply runs the kind's transform over values, preserving order.
func Apply(kind Kind, values []string) ([]string, error) {
	r, ok := table[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported index kind %q", kind)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		c, err := r.Transform(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

var (
	bareYear  = regexp.MustCompile(`^[0-9]{4}$`)
	yearMonth = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}$`)
)

// PadDate completes partial ISO 8601 dates: a bare year becomes January 1st of
// that year and a year-month becomes the first of the month. Anything else is
// returned unchanged.
func PadDate(value string) string {
	switch {
	case bareYear.MatchString(value):
		return value + "-01-01"
	case yearMonth.MatchString(value):
		return value + "-01"
	}
	return value
}

// layouts accepted after padding, tried in order.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UTCLayout is the rendering of indexed dates.
const UTCLayout = "2006-01-02T15:04:05Z"

// NormalizeDate pads partial dates, parses the result and renders it as a UTC
// timestamp. Unparseable input fails with pbcore.ErrDateFormat.
func NormalizeDate(value string) (string, error) {
	padded := PadDate(value)
	for _, layout := range layouts {
		t, err := time.Parse(layout, padded)
		if err == nil {
			return t.UTC().Format(UTCLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", pbcore.ErrDateFormat, value)
}
