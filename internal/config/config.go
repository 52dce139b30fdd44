// Package config loads the values threaded into schema construction: the
// institution name, the relator vocabulary and controlled-vocabulary source URIs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Vocabulary keys.
const (
	VocabLCSubjects      = "lc_subjects"
	VocabLCNames         = "lc_names"
	VocabLCGenres        = "lc_genres"
	VocabGetty           = "getty_aat"
	VocabTableOfContents = "table_of_contents"
	VocabCreatorRole     = "creator_role"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvInstitution = "PBCORE_INSTITUTION"
	EnvRelator     = "PBCORE_RELATOR"
)

type Config struct {
	Institution  string            `yaml:"institution" toml:"institution"`
	Relator      string            `yaml:"relator" toml:"relator"`
	Vocabularies map[string]string `yaml:"vocabularies" toml:"vocabularies"`
}

const ConfigFileName = "pbcore.yaml"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Institution: "Rock and Roll Hall of Fame and Museum",
		Relator:     "MARC relator terms",
		Vocabularies: map[string]string{
			VocabLCSubjects:      "http://id.loc.gov/authorities/subjects.html",
			VocabLCNames:         "http://id.loc.gov/authorities/names",
			VocabLCGenres:        "http://id.loc.gov/authorities/genreForms.html",
			VocabGetty:           "http://www.getty.edu/research/tools/vocabularies/aat/index.html",
			VocabTableOfContents: "http://metadataregistry.org/concept/show/id/1702.html",
			VocabCreatorRole:     "http://metadataregistry.org/concept/show/id/1425.html",
		},
	}
}

// Vocabulary returns the URI registered under key, falling back to the default.
func (c Config) Vocabulary(key string) string {
	if v := c.Vocabularies[key]; v != "" {
		return v
	}
	return Default().Vocabularies[key]
}

// Validate checks required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Institution) == "" {
		return fmt.Errorf("institution is required: %w", pbcore.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Relator) == "" {
		return fmt.Errorf("relator is required: %w", pbcore.ErrInvalidConfig)
	}
	return nil
}

// Load reads pbcore.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) config file. Fields left
// unset in the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var file Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported config format %q: %w", filepath.Ext(path), pbcore.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, pbcore.ErrInvalidConfig)
	}

	cfg := merge(Default(), file)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays environment overrides onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvInstitution); v != "" {
		c.Institution = v
	}
	if v := os.Getenv(EnvRelator); v != "" {
		c.Relator = v
	}
}

func merge(base, over Config) Config {
	if over.Institution != "" {
		base.Institution = over.Institution
	}
	if over.Relator != "" {
		base.Relator = over.Relator
	}
	for k, v := range over.Vocabularies {
		base.Vocabularies[k] = v
	}
	return base
}
