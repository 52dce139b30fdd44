package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pbcore/internal/files/scanner"
	"github.com/vvka-141/pbcore/internal/index"
	"github.com/vvka-141/pbcore/internal/index/sqlite"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

var indexFlags struct {
	json bool
	db   string
}

var indexCmd = &cobra.Command{
	Use:   "index <path>...",
	Short: "Project documents into search index fields",
	Long: `Project documents into search index fields.

Directory arguments are searched recursively for .xml files. Each document
is identified by its PID, or by a stable UUID derived from its
file name when it has none. With --db the fields are stored in a SQLite
database and documents whose content is unchanged since the last run are
skipped.

Examples:
  pbcore index asset.xml
  pbcore index *.xml --json
  pbcore index ./archive --db index.db`,
	Args: requireArgs(true, "path"),
	RunE: runIndex,
}

var searchCmd = &cobra.Command{
	Use:   "search <db> <field> <value>",
	Short: "List documents in an index database with a field value",
	Long: `List the ids of documents in an index database that have an exact field value.

Examples:
  pbcore search index.db collection_facet "RRHOF Archives"`,
	Args: requireArgs(false, "db", "field", "value"),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	indexCmd.Flags().BoolVar(&indexFlags.json, "json", false, "Output fields as JSON")
	indexCmd.Flags().StringVar(&indexFlags.db, "db", "", "Store fields in this SQLite database")
	rootCmd.AddCommand(indexCmd)
}

type indexOutput struct {
	ID      string           `json:"id"`
	File    string           `json:"file"`
	Skipped bool             `json:"skipped,omitempty"`
	Fields  *pbcore.FieldMap `json:"fields"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	var sink index.Sink = index.NewMemorySink()
	if indexFlags.db != "" {
		store, err := sqlite.Open(indexFlags.db)
		if err != nil {
			return err
		}
		defer store.Close()
		sink = store
	}
	ix := index.NewIndexer(sink, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sources, err := scanner.NewScanner().Collect(args...)
	if err != nil {
		return err
	}
	logger.Verbose("found %d document(s)", len(sources))

	var results []indexOutput
	for _, src := range sources {
		file := src.Path
		d, err := loadDocument(reg, file, src.Content)
		if err != nil {
			return err
		}
		id := d.Identify(file)
		res, err := ix.Index(ctx, id, d)
		if err != nil {
			return err
		}
		results = append(results, indexOutput{ID: id, File: file, Skipped: res.Skipped, Fields: res.Fields})
	}

	out := cmd.OutOrStdout()
	if indexFlags.json {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, r := range results {
		status := "indexed"
		if r.Skipped {
			status = "unchanged"
		}
		fmt.Fprintf(out, "%s (%s): %s\n", r.ID, r.File, status)
		r.Fields.Each(func(field string, values []string) {
			for _, v := range values {
				fmt.Fprintf(out, "  %s: %s\n", field, v)
			}
		})
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err != nil {
		return fmt.Errorf("failed to open index %s: %w", args[0], err)
	}
	store, err := sqlite.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ids, err := store.Search(ctx, args[1], args[2])
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
