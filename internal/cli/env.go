package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pbcore/internal/config"
	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/internal/logging"
	"github.com/vvka-141/pbcore/internal/terms"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// loadConfig loads .env, then the config file, then environment overrides.
// A missing ./pbcore.yaml is not an error; a missing --config file is.
func loadConfig() (config.Config, error) {
	_ = godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	if rootFlags.config != "" {
		cfg, err = config.LoadFile(rootFlags.config)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Config{}, fmt.Errorf("config file %s not found: %w", rootFlags.config, pbcore.ErrInvalidConfig)
		}
	} else {
		cfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			d := config.Default()
			cfg, err = &d, nil
		}
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

func loadRegistry() (*terms.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return terms.NewRegistry(cfg)
}

func newLogger(cmd *cobra.Command) pbcore.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), rootFlags.verbose)
}

// resolveSchema returns the schema named by --variant, or the one detected
// from data.
func resolveSchema(reg *terms.Registry, data []byte) (*terms.Schema, error) {
	name := terms.Name(rootFlags.variant)
	if name == "" {
		detected, err := datastream.DetectVariant(data)
		if err != nil {
			return nil, err
		}
		name = detected
	}
	s, err := reg.Schema(name)
	if err != nil {
		return nil, fmt.Errorf("invalid argument --variant: %w (valid: %s)", err, strings.Join(variantNames(reg), ", "))
	}
	return s, nil
}

func variantNames(reg *terms.Registry) []string {
	var out []string
	for _, n := range reg.Names() {
		out = append(out, string(n))
	}
	return out
}

// openDocument reads and loads the document at path.
func openDocument(reg *terms.Registry, path string) (*datastream.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return loadDocument(reg, path, data)
}

// loadDocument loads data read from name.
func loadDocument(reg *terms.Registry, name string, data []byte) (*datastream.Document, error) {
	schema, err := resolveSchema(reg, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	d, err := datastream.Load(schema, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

var outputFlags struct {
	write  bool
	output string
	outDir string
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&outputFlags.write, "write", "w", false, "Write the result back to the input file")
	cmd.Flags().StringVarP(&outputFlags.output, "output", "o", "", "Write the result to this file instead of stdout")
}

// emit writes d to --output, back to src with --write, or to stdout.
func emit(cmd *cobra.Command, d *datastream.Document, src string) error {
	data, err := d.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}

	target := outputFlags.output
	if target == "" && outputFlags.write {
		target = src
	}
	if target == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	d.MarkClean()
	newLogger(cmd).Verbose("wrote %s", target)
	return nil
}

// writeVariants writes each document to dir as <stem>.<variant>.xml and
// returns the paths written.
func writeVariants(src, dir string, docs ...*datastream.Document) ([]string, error) {
	if dir == "" {
		dir = filepath.Dir(src)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	var paths []string
	for _, d := range docs {
		data, err := d.Serialize()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize: %w", err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s.%s.xml", stem, d.Variant()))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		d.MarkClean()
		paths = append(paths, path)
	}
	return paths, nil
}

func resetFlags() {
	rootFlags.verbose = false
	rootFlags.config = ""
	rootFlags.variant = ""
	outputFlags.write = false
	outputFlags.output = ""
	outputFlags.outDir = ""
	getFlags.json = false
	indexFlags.json = false
	indexFlags.db = ""
}
