package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pbcore/internal/terms"
)

// requireArgs validates that at least the named positional arguments are
// present. With variadic set, extra arguments are accepted.
func requireArgs(variadic bool, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			missing := names[len(args)]
			return fmt.Errorf(`missing required argument: <%s>

Usage: %s`, missing, cmd.UseLine())
		}
		if !variadic && len(args) > len(names) {
			return fmt.Errorf("accepts %d arg(s), received %d", len(names), len(args))
		}
		return nil
	}
}

func parseTermPath(s string) (terms.Path, error) {
	p, err := terms.ParsePath(s)
	if err != nil {
		return nil, fmt.Errorf("invalid argument %q: %w", s, err)
	}
	return p, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid argument %q: index must be a non-negative integer", s)
	}
	return i, nil
}

// parseAssignments parses "<index>=<value>" pairs.
func parseAssignments(args []string) (map[int]string, error) {
	out := make(map[int]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q: want <index>=<value>", a)
		}
		i, err := parseIndex(k)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
