package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

const (
	defaultManifest    = ".gitmodules"
	defaultConcurrency = 6
	maxConcurrency     = 64
	defaultTimeout     = 30 * time.Second
)

// Duration wraps time.Duration with YAML support for "30s"-style values.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// RetrySettings configures the probe retry wrapper.
type RetrySettings struct {
	Strategy    string   `yaml:"strategy"` // "none", "fixed", "exponential"
	BaseDelay   Duration `yaml:"base_delay"`
	MaxAttempts int      `yaml:"max_attempts"`
}

// Config is the top-level configuration for submodsync.
type Config struct {
	Manifest    string                  `yaml:"manifest"`
	Workspace   string                  `yaml:"workspace"`
	Concurrency int                     `yaml:"concurrency"`
	Timeout     Duration                `yaml:"timeout"`
	Retry       RetrySettings           `yaml:"retry"`
	Categories  []entities.CategoryRule `yaml:"categories"`
}

// Default returns the configuration used when no config file exists: the
// tool must work from a bare checkout.
func Default() *Config {
	return &Config{
		Manifest:    defaultManifest,
		Workspace:   ".",
		Concurrency: defaultConcurrency,
		Timeout:     Duration(defaultTimeout),
		Retry:       RetrySettings{Strategy: string(entities.RetryNone), MaxAttempts: 1},
		Categories:  entities.DefaultCategoryRules(),
	}
}

// Load reads and parses a configuration file, filling omitted fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".submodsync.yaml",
		".submodsync.yml",
		"submodsync.yaml",
		"submodsync.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// RuntimeContext converts the file configuration into the context object
// handed to every component.
func (c *Config) RuntimeContext() entities.RuntimeContext {
	return entities.RuntimeContext{
		ManifestPath:  c.Manifest,
		WorkspaceRoot: c.Workspace,
		Concurrency:   c.Concurrency,
		ProbeTimeout:  time.Duration(c.Timeout),
		Retry: entities.RetryConfig{
			Strategy:    entities.RetryStrategy(c.Retry.Strategy),
			BaseDelay:   time.Duration(c.Retry.BaseDelay),
			MaxAttempts: c.Retry.MaxAttempts,
		},
		CategoryRules: c.Categories,
	}
}

// validate checks configuration value ranges.
func validate(cfg *Config) error {
	if cfg.Manifest == "" {
		return errors.New("manifest path must not be empty")
	}
	if cfg.Concurrency < 1 || cfg.Concurrency > maxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d, got %d", maxConcurrency, cfg.Concurrency)
	}
	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	switch entities.RetryStrategy(cfg.Retry.Strategy) {
	case entities.RetryNone, entities.RetryFixed, entities.RetryExponential:
	default:
		return fmt.Errorf("unknown retry strategy %q", cfg.Retry.Strategy)
	}
	if cfg.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be at least 1")
	}
	if cfg.Retry.Strategy != string(entities.RetryNone) && cfg.Retry.BaseDelay <= 0 {
		return errors.New("retry.base_delay must be positive for fixed/exponential strategies")
	}

	return nil
}
