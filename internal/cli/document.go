package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/internal/terms"
)

var newCmd = &cobra.Command{
	Use:   "new <variant>",
	Short: "Print an empty document built from a variant's template",
	Long: `Print an empty document built from a variant's template.

Variants: document, instantiation, legacy_document, legacy_digital_document,
legacy_instantiation.

Examples:
  pbcore new document > asset.xml
  pbcore new instantiation -o tape.xml`,
	Args: requireArgs(false, "variant"),
	RunE: runNew,
}

var getFlags struct {
	json bool
}

var getCmd = &cobra.Command{
	Use:   "get <file> <term_path>",
	Short: "Print the values of a field",
	Long: `Print the values of a field, one per line, in document order.

Examples:
  pbcore get asset.xml title
  pbcore get asset.xml contributor.name --json`,
	Args: requireArgs(false, "file", "term_path"),
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <file> <term_path> <index>=<value>...",
	Short: "Set field values by index",
	Long: `Set field values by index.

Writing index N of a field that has N values creates the node, unless the
field belongs to a structure (creator, contributor, publisher) that must be
created with 'pbcore insert' first.

Examples:
  pbcore set asset.xml title 0="Live at the Agora" -w
  pbcore set asset.xml contributor.role 1=Producer -w`,
	Args: requireArgs(true, "file", "term_path", "index=value"),
	RunE: runSet,
}

var insertCmd = &cobra.Command{
	Use:   "insert <file> <term_path> [values...]",
	Short: "Insert a new node for a field",
	Long: `Insert a new node for a field. For structured fields the values fill the
child fields positionally.

Examples:
  pbcore insert asset.xml contributor "Jane Doe" Host -w
  pbcore insert asset.xml event_date 2012-04-14 -w`,
	Args: requireArgs(true, "file", "term_path"),
	RunE: runInsert,
}

var removeCmd = &cobra.Command{
	Use:   "remove <file> <term_path> <index>",
	Short: "Remove the node at an index",
	Args:  requireArgs(false, "file", "term_path", "index"),
	RunE:  runRemove,
}

func init() {
	getCmd.Flags().BoolVar(&getFlags.json, "json", false, "Output values as a JSON array")
	for _, c := range []*cobra.Command{newCmd, setCmd, insertCmd, removeCmd} {
		addOutputFlags(c)
	}
	rootCmd.AddCommand(newCmd, getCmd, setCmd, insertCmd, removeCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	schema, err := reg.Schema(terms.Name(args[0]))
	if err != nil {
		return fmt.Errorf("invalid argument %q: %w", args[0], err)
	}
	d, err := datastream.New(schema)
	if err != nil {
		return err
	}
	return emit(cmd, d, "")
}

func runGet(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	path, err := parseTermPath(args[1])
	if err != nil {
		return err
	}
	d, err := openDocument(reg, args[0])
	if err != nil {
		return err
	}
	values, err := d.GetValues(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if getFlags.json {
		if values == nil {
			values = []string{}
		}
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	for _, v := range values {
		fmt.Fprintln(out, v)
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	path, err := parseTermPath(args[1])
	if err != nil {
		return err
	}
	values, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}
	d, err := openDocument(reg, args[0])
	if err != nil {
		return err
	}
	if err := d.UpdateValues(path, values); err != nil {
		return err
	}
	return emit(cmd, d, args[0])
}

func runInsert(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	path, err := parseTermPath(args[1])
	if err != nil {
		return err
	}
	d, err := openDocument(reg, args[0])
	if err != nil {
		return err
	}
	_, idx, err := d.Insert(path, args[2:]...)
	if err != nil {
		return err
	}
	newLogger(cmd).Verbose("inserted %s at index %d", path, idx)
	return emit(cmd, d, args[0])
}

func runRemove(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	path, err := parseTermPath(args[1])
	if err != nil {
		return err
	}
	idx, err := parseIndex(args[2])
	if err != nil {
		return err
	}
	d, err := openDocument(reg, args[0])
	if err != nil {
		return err
	}
	if err := d.RemoveNode(path, idx); err != nil {
		return err
	}
	return emit(cmd, d, args[0])
}
