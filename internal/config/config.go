// Package config loads quarry's TOML configuration.
//
// The config file supplies default search flags for the CLI; command-line
// flags override it. A missing file is not an error — defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file looked up under the user config dir.
const DefaultFileName = "quarry.toml"

// Config holds CLI defaults.
type Config struct {
	Search SearchConfig `toml:"search"`
	Output OutputConfig `toml:"output"`
}

// SearchConfig holds default search flags.
type SearchConfig struct {
	MatchCase bool `toml:"match_case"`
	WholeWord bool `toml:"whole_word"`
	Regex     bool `toml:"regex"`
	MarkAll   bool `toml:"mark_all"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Color bool `toml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{MarkAll: true},
		Output: OutputConfig{Color: true},
	}
}

// Load reads configuration from path. An empty path falls back to
// DefaultPath; a file that does not exist yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file path, or "" when the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quarry", DefaultFileName)
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
