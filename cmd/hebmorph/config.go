package main

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

const (
	englishNone  = "none"
	englishLemma = "lemma"
	englishStem  = "stem"

	specialNone = "none"

	defaultWorkers = 4
)

// Config holds the analyzer settings. It is read from an optional YAML file
// and overridden by command-line flags.
type Config struct {
	// Lexicon is a lexicon file path. Empty uses the embedded sample lexicon.
	Lexicon string `yaml:"lexicon"`
	// Special is a special-cases file path. Empty uses the embedded list,
	// "none" disables special cases.
	Special string `yaml:"special"`
	// CaseSensitive makes special-case matching case sensitive.
	CaseSensitive bool `yaml:"case_sensitive"`
	// Marker is the exact-match suffix operator, a single rune or empty.
	Marker string `yaml:"marker"`
	// English selects the analyzer for non-Hebrew tokens: none, lemma or stem.
	English string `yaml:"english"`
	// Workers bounds the number of files analyzed concurrently.
	Workers int `yaml:"workers"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the settings used when no file or flag overrides
// them.
func DefaultConfig() Config {
	return Config{
		English: englishNone,
		Workers: defaultWorkers,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("hebmorph: reading config: %w", err)
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return cfg, fmt.Errorf("hebmorph: parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Marker != "" {
		r, size := utf8.DecodeRuneInString(c.Marker)
		if r == utf8.RuneError || size != len(c.Marker) {
			return fmt.Errorf("hebmorph: marker must be a single character, got %q", c.Marker)
		}
	}
	switch c.English {
	case englishNone, englishLemma, englishStem:
	default:
		return fmt.Errorf("hebmorph: english must be one of none, lemma, stem; got %q", c.English)
	}
	if c.Workers < 1 {
		return errors.New("hebmorph: workers must be at least 1")
	}
	return nil
}

// MarkerRune returns the configured marker, or 0 when disabled.
func (c Config) MarkerRune() rune {
	if c.Marker == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.Marker)
	return r
}
