// Package config loads the kaleido driver configuration.
//
// A configuration file is TOML or YAML, chosen by extension (.yaml and .yml
// are YAML, everything else is TOML):
//
//	log_level = "debug"
//	max_depth = 512
//	output    = "ast.txt"
//
// Missing fields fall back to the values of Default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/kaleido/internal/logging"
	"github.com/metaphox/kaleido/parser"
)

// Format is the syntax of a configuration file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the driver settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// MaxDepth bounds expression nesting in the parser.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
	// Output is the file the parse command writes to; empty means stdout.
	Output string `toml:"output" yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content in the given format, applies defaults and validates
// the result.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	cfg.applyDefaults()
	cfg.Output = os.ExpandEnv(cfg.Output)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DetectFormat determines the configuration format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing configuration.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = parser.DefaultMaxDepth
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %d: must be positive", c.MaxDepth)
	}
	return nil
}

// Level returns the parsed log level. Validate has already rejected unknown
// names, so the fallback is never used for a loaded configuration.
func (c *Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
