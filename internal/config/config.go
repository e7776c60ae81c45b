// Package config provides reading and writing of agora configuration.
// Supports both global (~/.agora/config.yaml) and local (.agora/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.agora/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is workspace-specific config in .agora/config.yaml
	ScopeLocal
)

// Author represents the publisher identity used when none is given on the
// command line.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Page holds listing pagination options.
type Page struct {
	Size *int `yaml:"size,omitempty"`
}

// Fuzzy holds fuzzy matching options.
type Fuzzy struct {
	Threshold *int `yaml:"threshold,omitempty"`
}

// Render holds terminal rendering options.
type Render struct {
	Colour string `yaml:"colour,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultPageSize       = 10
	DefaultFuzzyThreshold = 60
	DefaultRenderColour   = "auto"
)

// Validation bounds for configuration values.
const (
	MinPageSize       = 1
	MaxPageSize       = 100
	MinFuzzyThreshold = 0
	MaxFuzzyThreshold = 100
)

// Config contains configuration for agora.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Page   Page   `yaml:"page,omitempty"`
	Fuzzy  Fuzzy  `yaml:"fuzzy,omitempty"`
	Render Render `yaml:"render,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Page.Size != nil {
		v := *c.Page.Size
		if v < MinPageSize || v > MaxPageSize {
			return fmt.Errorf("%w: page.size must be between %d and %d, got %d",
				ErrInvalidValue, MinPageSize, MaxPageSize, v)
		}
	}
	if c.Fuzzy.Threshold != nil {
		v := *c.Fuzzy.Threshold
		if v < MinFuzzyThreshold || v > MaxFuzzyThreshold {
			return fmt.Errorf("%w: fuzzy.threshold must be between %d and %d, got %d",
				ErrInvalidValue, MinFuzzyThreshold, MaxFuzzyThreshold, v)
		}
	}
	if c.Render.Colour != "" {
		switch c.Render.Colour {
		case "auto", "always", "never":
		default:
			return fmt.Errorf("%w: render.colour must be auto, always or never, got %q",
				ErrInvalidValue, c.Render.Colour)
		}
	}
	return nil
}

// PageSize returns the default listing page size (defaults to 10).
func (c *Config) PageSize() int {
	if c.Page.Size == nil {
		return DefaultPageSize
	}
	return *c.Page.Size
}

// FuzzyThreshold returns the similarity cut-off for fuzzy description
// matching (defaults to 60).
func (c *Config) FuzzyThreshold() int {
	if c.Fuzzy.Threshold == nil {
		return DefaultFuzzyThreshold
	}
	return *c.Fuzzy.Threshold
}

// RenderColour returns the colour mode for terminal output: auto, always
// or never (defaults to auto).
func (c *Config) RenderColour() string {
	if c.Render.Colour == "" {
		return DefaultRenderColour
	}
	return c.Render.Colour
}

// LocalPath returns the path to the local (workspace) config file.
func LocalPath() string {
	return filepath.Join(".agora", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.agora/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".agora", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
