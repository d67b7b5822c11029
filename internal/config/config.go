package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Defaults.
const (
	DefaultBaseURL        = "http://localhost:3000/api/tasks"
	DefaultSearchDebounce = 500 * time.Millisecond
	DefaultRequestTimeout = 10 * time.Second
	DefaultLogLevel       = "info"

	// EnvBaseURL overrides base_url when set.
	EnvBaseURL = "TASKDECK_BASE_URL"
)

// Config represents ~/.taskdeck/config.yaml.
type Config struct {
	BaseURL               string        `yaml:"base_url"`
	SearchDebounce        time.Duration `yaml:"search_debounce,omitempty"`
	RequestTimeout        time.Duration `yaml:"request_timeout,omitempty"`
	DiscardStaleResponses bool          `yaml:"discard_stale_responses,omitempty"`
	LogLevel              string        `yaml:"log_level,omitempty"`
	LogFile               string        `yaml:"log_file,omitempty"`
}

// Default returns a config with every field at its default value.
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		SearchDebounce: DefaultSearchDebounce,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       DefaultLogLevel,
	}
}

// Parse parses config.yaml bytes into a Config. Omitted fields keep their
// defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config file at path. A missing file yields the defaults.
// The TASKDECK_BASE_URL environment variable overrides base_url.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if env := os.Getenv(EnvBaseURL); env != "" {
		cfg.BaseURL = env
		if err := cfg.Validate(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvBaseURL, err)
		}
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that the base URL is an absolute http(s) URL and the
// durations are not negative.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.BaseURL)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("invalid base_url %q: must not carry a query string", c.BaseURL)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("search_debounce must not be negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

func (c *Config) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.SearchDebounce == 0 {
		c.SearchDebounce = DefaultSearchDebounce
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}
