package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert documents written by the prior structural version",
	Long: `Convert documents written by the prior structural version.

Available commands:
  document       Strip the embedded instantiation from a legacy document
  physical       Extract the embedded instantiation as a physical instantiation
  instantiation  Re-root a legacy instantiation at its pbcoreInstantiation
  split          Write the document and its instantiation as separate files
  clean          Remove stray relations and re-file unannotated coverage
  clean-digital  As clean, keeping accession numbers and the archival collection
  upgrade        Apply whatever conversions the detected variant needs

Examples:
  pbcore migrate split legacy.xml --out-dir ./converted
  pbcore migrate clean-digital --variant legacy_digital_document digital.xml -w`,
}

// migrateStep builds a subcommand that converts the document in place.
func migrateStep(use, short string, step func(*migrate.Migrator, *datastream.Document) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  requireArgs(false, "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, d, err := openForMigration(cmd, args[0])
			if err != nil {
				return err
			}
			if err := step(m, d); err != nil {
				return err
			}
			return emit(cmd, d, args[0])
		},
	}
	addOutputFlags(cmd)
	return cmd
}

var migratePhysicalCmd = &cobra.Command{
	Use:   "physical <file>",
	Short: "Extract the embedded instantiation as a physical instantiation",
	Args:  requireArgs(false, "file"),
	RunE:  runMigratePhysical,
}

var migrateSplitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Write the document and its instantiation as separate files",
	Long: `Write the document and its instantiation as separate files named
<name>.document.xml and <name>.instantiation.xml.`,
	Args: requireArgs(false, "file"),
	RunE: runMigrateSplit,
}

var migrateUpgradeCmd = &cobra.Command{
	Use:   "upgrade <file>",
	Short: "Apply whatever conversions the detected variant needs",
	Args:  requireArgs(false, "file"),
	RunE:  runMigrateUpgrade,
}

func init() {
	migratePhysicalCmd.Flags().StringVarP(&outputFlags.output, "output", "o", "", "Write the result to this file instead of stdout")
	for _, c := range []*cobra.Command{migrateSplitCmd, migrateUpgradeCmd} {
		c.Flags().StringVar(&outputFlags.outDir, "out-dir", "", "Directory for the converted files (default: next to the input)")
	}

	migrateCmd.AddCommand(
		migrateStep("document", "Strip the embedded instantiation from a legacy document",
			(*migrate.Migrator).ToDocument),
		migratePhysicalCmd,
		migrateStep("instantiation", "Re-root a legacy instantiation at its pbcoreInstantiation",
			(*migrate.Migrator).ToInstantiation),
		migrateSplitCmd,
		migrateStep("clean", "Remove stray relations and re-file unannotated coverage",
			(*migrate.Migrator).CleanDocument),
		migrateStep("clean-digital", "As clean, keeping accession numbers and the archival collection",
			(*migrate.Migrator).CleanDigitalDocument),
		migrateUpgradeCmd,
	)
	rootCmd.AddCommand(migrateCmd)
}

func openForMigration(cmd *cobra.Command, path string) (*migrate.Migrator, *datastream.Document, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, nil, err
	}
	d, err := openDocument(reg, path)
	if err != nil {
		return nil, nil, err
	}
	newLogger(cmd).Verbose("%s: %s", path, d.Variant())
	return migrate.New(reg, newLogger(cmd)), d, nil
}

func runMigratePhysical(cmd *cobra.Command, args []string) error {
	m, d, err := openForMigration(cmd, args[0])
	if err != nil {
		return err
	}
	inst, err := m.ToPhysicalInstantiation(d)
	if err != nil {
		return err
	}
	return emit(cmd, inst, "")
}

func runMigrateSplit(cmd *cobra.Command, args []string) error {
	m, d, err := openForMigration(cmd, args[0])
	if err != nil {
		return err
	}
	doc, inst, err := m.Split(d)
	if err != nil {
		return err
	}
	return reportWritten(cmd, args[0], doc, inst)
}

func runMigrateUpgrade(cmd *cobra.Command, args []string) error {
	m, d, err := openForMigration(cmd, args[0])
	if err != nil {
		return err
	}
	if !d.Variant().Legacy() {
		newLogger(cmd).Info("%s is already a current %s", args[0], d.Variant())
		return nil
	}
	docs, err := m.Upgrade(d)
	if err != nil {
		return err
	}
	return reportWritten(cmd, args[0], docs...)
}

func reportWritten(cmd *cobra.Command, src string, docs ...*datastream.Document) error {
	paths, err := writeVariants(src, outputFlags.outDir, docs...)
	if err != nil {
		return err
	}
	for i, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", docs[i].Variant(), p)
	}
	return nil
}
