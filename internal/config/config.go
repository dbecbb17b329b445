// Package config handles crimp configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Sridharvn/crimp/internal/errors"
	"gopkg.in/yaml.v3"
)

// DocsConfig defines where package documentation is fetched from.
type DocsConfig struct {
	// Repo is the GitHub repository of the compression backend, owner/repo.
	Repo string `yaml:"repo"`
}

// CacheConfig contains docs cache settings.
type CacheConfig struct {
	TTL string `yaml:"ttl"` // e.g., "1h"
}

// OptimizeConfig contains default compression options.
type OptimizeConfig struct {
	Aggressive bool `yaml:"aggressive,omitempty"` // Best-compression encoder level
	Unsafe     bool `yaml:"unsafe,omitempty"`     // Lossy transforms allowed
}

// Config represents the crimp configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	Docs     DocsConfig     `yaml:"docs"`
	Cache    CacheConfig    `yaml:"cache"`
	Optimize OptimizeConfig `yaml:"optimize,omitempty"`

	// Theme is the persisted display preference: dark, light, or auto.
	Theme string `yaml:"theme,omitempty"`

	// Debounce is the recompute quiet window for watch mode.
	Debounce string `yaml:"debounce,omitempty"` // e.g., "300ms"
}

// Default values.
const (
	DefaultVersion  = 1
	DefaultDocsRepo = "klauspost/compress"
	DefaultCacheTTL = "1h"
	DefaultTheme    = "auto"
	DefaultDebounce = "300ms"
)

// DefaultFileMode is the permission mode for files crimp writes.
const DefaultFileMode = 0644

// Load reads and validates config from the default location.
func Load() (*Config, error) {
	paths := NewPaths()
	return LoadFrom(paths.ConfigFile)
}

// LoadFrom reads and validates config from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault returns the config file if present, or defaults otherwise.
// Config trouble is never fatal for the compression commands.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return NewDefaultConfig()
	}
	return cfg
}

// Save writes config to the default location.
func Save(cfg *Config) error {
	paths := NewPaths()
	return SaveTo(cfg, paths.ConfigFile)
}

// SaveTo writes config to a specific path.
func SaveTo(cfg *Config, path string) error {
	cfg.applyDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal config", "", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}

	return os.WriteFile(path, data, DefaultFileMode)
}

// Validate checks config for required fields and valid values.
func (c *Config) Validate() error {
	if _, _, err := ParseRepo(c.Docs.Repo); err != nil {
		return errors.ConfigInvalid(err.Error())
	}

	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return errors.ConfigInvalid("invalid cache.ttl format, use Go duration format (e.g., 1h)")
		}
	}

	if c.Debounce != "" {
		if _, err := time.ParseDuration(c.Debounce); err != nil {
			return errors.ConfigInvalid("invalid debounce format, use Go duration format (e.g., 300ms)")
		}
	}

	switch c.Theme {
	case "", "dark", "light", "auto":
	default:
		return errors.ConfigInvalid("invalid theme, use dark, light, or auto")
	}

	return nil
}

// applyDefaults sets default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Docs.Repo == "" {
		c.Docs.Repo = DefaultDocsRepo
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Debounce == "" {
		c.Debounce = DefaultDebounce
	}
}

// TTLDuration returns the cache TTL as a time.Duration.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		d, _ = time.ParseDuration(DefaultCacheTTL)
	}
	return d
}

// DebounceDuration returns the recompute quiet window as a time.Duration.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		d, _ = time.ParseDuration(DefaultDebounce)
	}
	return d
}

// Exists checks if a config file exists at the default location.
func Exists() bool {
	paths := NewPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// NewDefaultConfig creates a config with all defaults applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DocsOwnerRepo returns the owner and repo of the docs source.
func (c *Config) DocsOwnerRepo() (owner, repo string, err error) {
	return ParseRepo(c.Docs.Repo)
}
