// ABOUTME: Configuration loading and parsing for coven-wallet
// ABOUTME: Supports YAML files with environment variable expansion and defaults

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/2389/coven-wallet/internal/wallet"
)

// DefaultPreferredWallet is the well-known first-party wallet name preferred
// when the host configures no preference order.
const DefaultPreferredWallet = "Coven Wallet"

// Config represents the complete coven-wallet configuration
type Config struct {
	Wallet   WalletConfig   `yaml:"wallet"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// WalletConfig holds wallet selection and connection behavior
type WalletConfig struct {
	// Preferred orders the selector output; names listed here sort first.
	Preferred []string `yaml:"preferred"`

	// RequiredCapabilities narrows wallet selection beyond the baseline
	// connect/disconnect/accounts capability set.
	RequiredCapabilities []string `yaml:"required_capabilities"`

	// StorageKey is the key the recent-connection record is stored under.
	StorageKey string `yaml:"storage_key"`

	// AutoConnect enables silent session restore on startup.
	AutoConnect bool `yaml:"auto_connect"`

	// EnableUnsafeBurner registers the in-process burner wallet. Development
	// only: its keys live in memory with no protection whatsoever.
	EnableUnsafeBurner bool `yaml:"enable_unsafe_burner"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded and
// defaults are applied before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills in the documented defaults for unset fields.
func (c *Config) applyDefaults() {
	if c.Wallet.Preferred == nil {
		c.Wallet.Preferred = []string{DefaultPreferredWallet}
	}
	if c.Wallet.StorageKey == "" {
		c.Wallet.StorageKey = wallet.DefaultStorageKey
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}

	return nil
}
