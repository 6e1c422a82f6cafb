package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Contact service backends.
const (
	ServiceMock   = "mock"
	ServiceRemote = "remote"
)

// Config represents the global ~/.tgclone/config.toml. Every field can be
// overridden from the environment.
type Config struct {
	DefaultSession string        `toml:"default_session" env:"TGC_SESSION"`
	Service        string        `toml:"service" env:"TGC_SERVICE"`
	SearchTimeout  time.Duration `toml:"search_timeout" env:"TGC_SEARCH_TIMEOUT"`
	SearchLimit    int           `toml:"search_limit" env:"TGC_SEARCH_LIMIT"`
	MockDelay      time.Duration `toml:"mock_delay" env:"TGC_MOCK_DELAY"`
	MetricsAddr    string        `toml:"metrics_addr,omitempty" env:"TGC_METRICS_ADDR"`
	RateLimitRPS   float64       `toml:"rate_limit_rps" env:"TGC_RATE_LIMIT_RPS"`
	RateLimitBurst int           `toml:"rate_limit_burst" env:"TGC_RATE_LIMIT_BURST"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Service:        ServiceMock,
		SearchTimeout:  5 * time.Second,
		SearchLimit:    20,
		MockDelay:      time.Second,
		RateLimitRPS:   10,
		RateLimitBurst: 20,
	}
}

// Load reads config from the given path on top of the defaults. Returns an
// error if the file is missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path (a missing file means defaults), applies environment
// overrides and validates the result.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from TGC_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values the client and daemon cannot run with.
func (c *Config) Validate() error {
	switch c.Service {
	case ServiceMock, ServiceRemote:
	default:
		return fmt.Errorf("config: service must be %q or %q, got %q", ServiceMock, ServiceRemote, c.Service)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("config: search_timeout must be positive, got %s", c.SearchTimeout)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("config: search_limit must be positive, got %d", c.SearchLimit)
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("config: mock_delay must not be negative, got %s", c.MockDelay)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("config: rate limits must not be negative")
	}
	return nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
