package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when no config file is present.
const (
	DefaultServerURL      = "http://localhost:8000"
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds client settings, loaded from a YAML file with
// environment and flag overrides applied on top.
type Config struct {
	ServerURL      string `yaml:"server_url"`
	RequestTimeout string `yaml:"request_timeout,omitempty"`
	PollInterval   string `yaml:"poll_interval,omitempty"`
	HistoryPath    string `yaml:"history_path,omitempty"`
}

// DefaultConfig returns a config pointing at a local server.
func DefaultConfig() *Config {
	return &Config{ServerURL: DefaultServerURL}
}

// DefaultConfigPath returns the standard config file location in the
// user's home directory.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".askdb.yaml"), nil
}

// DefaultHistoryPath returns the standard location of the local query
// history database.
func DefaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".askdb-history.db"), nil
}

// LoadConfig reads a config file. A missing file yields the defaults;
// a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	return cfg, nil
}

// Save writes the config to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveServerURL applies the override chain: flag value, then the
// ASKDB_SERVER environment variable, then the config file value.
func (c *Config) ResolveServerURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("ASKDB_SERVER"); env != "" {
		return env
	}
	return c.ServerURL
}

// ResolveRequestTimeout parses the configured request timeout, falling
// back to the default on absence or parse failure.
func (c *Config) ResolveRequestTimeout() time.Duration {
	return parseDurationOr(c.RequestTimeout, DefaultRequestTimeout)
}

// ResolvePollInterval parses the configured poll interval, falling back
// to the poller default.
func (c *Config) ResolvePollInterval() time.Duration {
	return parseDurationOr(c.PollInterval, DefaultPollInterval)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		LogWarn("invalid duration %q in config, using %s", s, fallback)
		return fallback
	}
	return d
}
