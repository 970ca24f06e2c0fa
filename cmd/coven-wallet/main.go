// ABOUTME: Entry point for the coven-wallet daemon
// ABOUTME: Manages wallet discovery, connection lifecycle, and session restore

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2389/coven-wallet/internal/burner"
	"github.com/2389/coven-wallet/internal/config"
	"github.com/2389/coven-wallet/internal/registry"
	"github.com/2389/coven-wallet/internal/store"
	"github.com/2389/coven-wallet/internal/wallet"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                                                     _  _        _
  ___  ___ __   __ ___  _ __        __      __ __ _ | || |  ___ | |_
 / __|/ _ \\ \ / // _ \| '_ \  _____\ \ /\ / // _' || || | / _ \| __|
| (__| (_) |\ V /|  __/| | | ||_____|\ V  V /| (_| || || ||  __/| |_
 \___|\___/  \_/  \___||_| |_|        \_/\_/  \__,_||_||_| \___| \__|
`

// getConfigPath returns the path to the wallet daemon config file.
// Priority: COVEN_WALLET_CONFIG env var > XDG_CONFIG_HOME/coven/wallet.yaml > ~/.config/coven/wallet.yaml
func getConfigPath() string {
	if envPath := os.Getenv("COVEN_WALLET_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "wallet.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "coven", "wallet.yaml")
}

// getDataPath returns the path to the coven-wallet data directory.
// Priority: XDG_DATA_HOME/coven-wallet > ~/.local/share/coven-wallet
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "coven-wallet")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: coven-wallet <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the wallet connection daemon")
		fmt.Println("  init     Write a starter config file")
		fmt.Println("  version  Print the version")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	// Version info
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)

	// Startup info
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	green.Print("    ▶ ")
	fmt.Printf("Preferred: %v\n", cfg.Wallet.Preferred)
	if cfg.Wallet.AutoConnect {
		green.Print("    ▶ ")
		fmt.Println("Auto-connect: enabled")
	}
	if cfg.Wallet.EnableUnsafeBurner {
		yellow.Print("    ▶ ")
		yellow.Println("UNSAFE burner wallet enabled (development only)")
	}
	if cfg.Metrics.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Metrics:   http://%s%s\n", cfg.Metrics.Addr, cfg.Metrics.Path)
	}
	fmt.Println()

	logger.Info("starting coven-wallet",
		"config", configPath,
		"database", cfg.Database.Path,
		"auto_connect", cfg.Wallet.AutoConnect,
	)

	// Storage
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	// Discovery feed
	reg := registry.New(logger)

	if cfg.Wallet.EnableUnsafeBurner {
		bw, err := burner.New(2)
		if err != nil {
			return fmt.Errorf("creating burner wallet: %w", err)
		}
		if err := reg.Register(bw); err != nil {
			return fmt.Errorf("registering burner wallet: %w", err)
		}
	}

	// Metrics endpoint
	var metrics *wallet.Metrics
	if cfg.Metrics.Enabled {
		metrics = wallet.NewMetrics(prometheus.DefaultRegisterer)
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Connection kit
	kit := wallet.New(wallet.Options{
		Feed:                 reg,
		Storage:              st,
		StorageKey:           cfg.Wallet.StorageKey,
		PreferredWallets:     cfg.Wallet.Preferred,
		RequiredCapabilities: cfg.Wallet.RequiredCapabilities,
		AutoConnect:          cfg.Wallet.AutoConnect,
		Metrics:              metrics,
		Logger:               logger,
	})
	defer kit.Close()

	kit.Start(ctx)

	state := kit.State()
	logger.Info("wallet kit ready",
		"discovered_wallets", len(state.Wallets),
		"status", state.Status.String(),
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

func runInit() error {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dbPath := filepath.Join(getDataPath(), "wallet.db")
	content := fmt.Sprintf(`# coven-wallet configuration
# Generated by coven-wallet init

wallet:
  preferred:
    - "%s"
  # required_capabilities:
  #   - "sui:signPersonalMessage"
  storage_key: "%s"
  auto_connect: false
  enable_unsafe_burner: false

database:
  path: "%s"

logging:
  level: "info"
  format: "text"

metrics:
  enabled: false
  addr: "127.0.0.1:9465"
  path: "/metrics"
`, config.DefaultPreferredWallet, wallet.DefaultStorageKey, dbPath)

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}
