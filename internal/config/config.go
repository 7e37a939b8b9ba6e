package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file keelson reads from Dir().
const FileName = "config.yaml"

// Config is the persisted keelson configuration. Every field is
// optional; the zero value means "use the built-in default".
type Config struct {
	// Shell holds the launcher overrides.
	Shell ShellConfig `yaml:"shell"`

	// HooksDir overrides where hooks are looked up, relative paths
	// resolving against the repository's git directory.
	HooksDir string `yaml:"hooks_dir"`

	// Trace turns on argv tracing without setting the environment
	// variable.
	Trace bool `yaml:"trace"`

	// Color is "auto", "always", or "never".
	Color string `yaml:"color"`
}

// ShellConfig tunes how the launcher hands commands to the shell.
type ShellConfig struct {
	// Path replaces /bin/sh as the shell used for commands that need one.
	Path string `yaml:"path"`

	// Metachars replaces the character set that routes a command
	// through the shell. Commands containing none of these characters
	// are executed directly.
	Metachars string `yaml:"metachars"`
}

// Load reads the config file from Dir. A missing file is not an error:
// it yields the zero Config.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(Dir(), FileName))
}

// LoadFrom reads and parses the config file at path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config file to Dir, creating the directory if needed.
func Save(cfg *Config) error {
	dir := Dir()
	if dir == "" {
		return fmt.Errorf("cannot resolve config directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
