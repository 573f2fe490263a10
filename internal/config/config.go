// Package config loads bialog's configuration from defaults, the YAML config
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bialog/bialog/internal/pagination"
)

// Defaults.
const (
	DefaultAPIEndpoint    = "http://localhost:8000"
	DefaultTimeoutSeconds = 10
	DefaultRetryCount     = 2
	DefaultOutputFormat   = "table"
	DefaultCacheTTL       = 300
	configFileName        = "config.yaml"
	credentialsFileName   = "credentials.json"
	homeDirName           = ".bialog"
)

// Config is the complete bialog configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Session    SessionConfig    `yaml:"session"`
	Logging    LoggingConfig    `yaml:"logging"`
	Pagination PaginationConfig `yaml:"pagination"`
	Output     OutputConfig     `yaml:"output"`
	Cache      CacheConfig      `yaml:"cache"`
}

// APIConfig configures the backend REST client.
type APIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RetryCount     int    `yaml:"retry_count"`
}

// SessionConfig configures where credentials are kept.
type SessionConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
}

// PaginationConfig configures list views.
type PaginationConfig struct {
	WindowSize int `yaml:"window_size"`
}

// OutputConfig configures non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// CacheConfig configures the response cache for catalogue lookups.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Directory  string `yaml:"directory"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Validation errors.
var (
	ErrInvalidTimeout    = errors.New("api.timeout_seconds must be > 0")
	ErrInvalidRetry      = errors.New("api.retry_count must be >= 0")
	ErrEmptyEndpoint     = errors.New("api.endpoint cannot be empty")
	ErrInvalidCacheTTL   = errors.New("cache.ttl_seconds must be >= 0")
	ErrInvalidOutput     = errors.New("output.default_format must be 'table' or 'json'")
	ErrInvalidWindowSize = pagination.ErrInvalidWindowSize
)

// New returns a Config populated with defaults rooted at the bialog home directory.
func New() *Config {
	home, err := GetConfigDir()
	if err != nil {
		home = filepath.Join(os.TempDir(), homeDirName)
	}
	return &Config{
		API: APIConfig{
			Endpoint:       DefaultAPIEndpoint,
			TimeoutSeconds: DefaultTimeoutSeconds,
			RetryCount:     DefaultRetryCount,
		},
		Session: SessionConfig{
			CredentialsFile: filepath.Join(home, credentialsFileName),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(home, "logs", "bialog.log"),
		},
		Pagination: PaginationConfig{
			WindowSize: pagination.DefaultWindowSize,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Directory:  filepath.Join(home, "cache"),
			TTLSeconds: DefaultCacheTTL,
		},
	}
}

// Load builds the effective configuration. path may be empty, in which case
// the default config file is used when it exists.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, configFileName)
	}

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if explicit {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}
	ApplyEnv(cfg, os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every section holds usable values.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return ErrEmptyEndpoint
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.API.TimeoutSeconds)
	}
	if c.API.RetryCount < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRetry, c.API.RetryCount)
	}
	ws := c.Pagination.WindowSize
	if ws < pagination.MinWindowSize || ws > pagination.MaxWindowSize {
		return fmt.Errorf("%w: got %d", ErrInvalidWindowSize, ws)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheTTL, c.Cache.TTLSeconds)
	}
	switch c.Output.DefaultFormat {
	case "table", "json":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidOutput, c.Output.DefaultFormat)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if mkErr := os.MkdirAll(filepath.Dir(path), 0o700); mkErr != nil {
		return fmt.Errorf("creating config directory: %w", mkErr)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config file %s: %w", path, writeErr)
	}
	return nil
}

// DefaultConfigPath returns the path of the default config file.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
