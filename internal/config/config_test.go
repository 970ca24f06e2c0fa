// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2389/coven-wallet/internal/wallet"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
wallet:
  preferred:
    - "Coven Wallet"
    - "Other Wallet"
  required_capabilities:
    - "sui:signPersonalMessage"
  storage_key: "custom:recent"
  auto_connect: true
  enable_unsafe_burner: true

database:
  path: "./wallet.db"

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
  addr: "127.0.0.1:9465"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Wallet.Preferred) != 2 || cfg.Wallet.Preferred[0] != "Coven Wallet" {
		t.Errorf("preferred not parsed: %v", cfg.Wallet.Preferred)
	}
	if cfg.Wallet.StorageKey != "custom:recent" {
		t.Errorf("storage_key = %q", cfg.Wallet.StorageKey)
	}
	if !cfg.Wallet.AutoConnect || !cfg.Wallet.EnableUnsafeBurner {
		t.Error("bool flags not parsed")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Addr != "127.0.0.1:9465" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics path default = %q", cfg.Metrics.Path)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./wallet.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Wallet.Preferred) != 1 || cfg.Wallet.Preferred[0] != DefaultPreferredWallet {
		t.Errorf("preferred default = %v", cfg.Wallet.Preferred)
	}
	if cfg.Wallet.StorageKey != wallet.DefaultStorageKey {
		t.Errorf("storage_key default = %q", cfg.Wallet.StorageKey)
	}
	if cfg.Wallet.AutoConnect {
		t.Error("auto_connect should default to false")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_WALLET_DB", "/tmp/from-env.db")
	path := writeConfig(t, `
database:
  path: "${TEST_WALLET_DB}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/tmp/from-env.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "info"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "database.path") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_MetricsAddrRequiredWhenEnabled(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./wallet.db"

metrics:
  enabled: true
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "metrics.addr") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_BadLoggingFormat(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./wallet.db"

logging:
  format: "xml"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
