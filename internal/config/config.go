// Package config provides configuration loading for the ModuSnap manager
// client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for environment variables
	// (MODUSNAP_ENGINE_URL, MODUSNAP_API_KEY, MODUSNAP_TIMEOUT,
	// MODUSNAP_LOG_LEVEL).
	EnvPrefix = "MODUSNAP"

	// DefaultEngineURL is the manager engine's default local address.
	DefaultEngineURL = "http://127.0.0.1:3001"

	// DefaultTimeout bounds each exchange with the engine.
	DefaultTimeout = 25 * time.Second
)

// Config holds the settings for talking to a manager engine. It is built
// fresh per Load call; nothing here is process-wide mutable state.
type Config struct {
	// EngineURL is the base URL of the manager engine
	EngineURL string

	// APIKey is an optional bearer token; empty disables auth
	APIKey string

	// Timeout bounds a single request/response exchange
	Timeout time.Duration
}

// fileConfig is the YAML file representation. Timeout is a duration
// string such as "25s".
type fileConfig struct {
	EngineURL string `yaml:"engineUrl,omitempty"`
	APIKey    string `yaml:"apiKey,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`
}

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Load builds a Config from defaults, an optional YAML file, and the
// MODUSNAP_* environment, in that precedence order (environment wins).
func Load(opts ...Option) (*Config, error) {
	loader := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loader); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		EngineURL: DefaultEngineURL,
		Timeout:   DefaultTimeout,
	}

	if loader.path != "" {
		if err := applyFile(cfg, loader.path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if fc.EngineURL != "" {
		cfg.EngineURL = fc.EngineURL
	}
	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in config file: %w", fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if s := v.GetString("engine_url"); s != "" {
		cfg.EngineURL = s
	}
	if s := v.GetString("api_key"); s != "" {
		cfg.APIKey = s
	}
	if d := v.GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
}

// Validate checks that the configuration can actually be used for a call.
func (c *Config) Validate() error {
	u, err := url.Parse(c.EngineURL)
	if err != nil {
		return fmt.Errorf("invalid engine URL %q: %w", c.EngineURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("engine URL %q must use http or https", c.EngineURL)
	}
	if u.Host == "" {
		return fmt.Errorf("engine URL %q has no host", c.EngineURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
