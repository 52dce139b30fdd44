package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	verbose bool
	config  string
	variant string
}

var rootCmd = &cobra.Command{
	Use:   "pbcore",
	Short: "Edit, index and migrate PBCore metadata documents",
	Long: `pbcore reads and writes PBCore description documents and instantiations
through named fields, flattens them into search index fields, and repairs
documents written by the prior structural version.

Fields are addressed by dotted term paths such as "title" or
"contributor.name". Document variants are detected from the XML shape; use
--variant when detection is ambiguous (legacy digital documents).

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Document XML could not be parsed
  12 - Operation invoked on the wrong document variant
  13 - Unknown term, missing node or missing index
  14 - Unparseable date or ambiguous coverage`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.config, "config", "c", "", "Config file (default: ./pbcore.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.variant, "variant", "", "Document variant; detected from the XML when empty")
}
