// Package config loads CLI defaults from an optional TOML or YAML file.
// Command-line flags take precedence over anything loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the batch command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config holds the settings shared by all commands.
type Config struct {
	Format      string `toml:"format" yaml:"format"`
	MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr"`
	PushURL     string `toml:"push_url" yaml:"push_url"`
	Wait        bool   `toml:"wait" yaml:"wait"`
	Verbose     bool   `toml:"verbose" yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Format: FormatText}
}

// Load reads the file at path on top of Default. An empty path returns Default.
// The decoder is picked from the file extension.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds a supported value.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", c.Format)
	}
}
