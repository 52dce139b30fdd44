package terms

import (
	"errors"
	"fmt"
	"strings"
)

// Path is a sequence of term names, outermost first, such as {"contributor", "name"}.
type Path []string

// P builds a Path from names.
func P(names ...string) Path {
	return Path(names)
}

// String renders the path in dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// ParsePath parses a dotted term path: "title", "contributor.name".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, errors.New("empty path")
	}

	var p Path
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", s)
		}
		if !isValidName(part) {
			return nil, fmt.Errorf("invalid path %q: invalid term name %q", s, part)
		}
		p = append(p, part)
	}
	return p, nil
}

func isValidName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
