package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRPCURL          = "https://rpc.ankr.com/avalanche"
	defaultCurrency        = "AVAX"
	defaultBatchSize       = 1000
	defaultMaxTransactions = 100
	defaultRateLimitCalls  = 1800
	defaultRateLimitWindow = 60 // seconds

	configFile = "config.json"
	envPrefix  = "WALLETSCAN_"
)

// Config holds all tunables for a scan run.
type Config struct {
	RPCURL          string `json:"rpc_url"`
	Currency        string `json:"currency"`
	BatchSize       uint64 `json:"batch_size"`
	MaxTransactions int    `json:"max_transactions"`
	RateLimitCalls  int    `json:"rate_limit_calls"`
	RateLimitWindow int    `json:"rate_limit_window_seconds"`
	StartBlock      uint64 `json:"start_block"`

	configDir string
}

// Load reads config from dir (default ~/.walletscan), applies a .env file in
// the working directory if present, then environment variable overrides.
// Precedence: env > .env > config file > defaults.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".walletscan")
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		cfg.configDir = dir
	}

	// Missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// RateWindow returns the rate-limit window as a duration.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimitWindow) * time.Second
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envPrefix + "RPC_URL"); v != "" {
		c.RPCURL = v
	}
	if v := os.Getenv(envPrefix + "CURRENCY"); v != "" {
		c.Currency = v
	}
	for _, f := range []struct {
		key string
		set func(uint64)
	}{
		{"BATCH_SIZE", func(n uint64) { c.BatchSize = n }},
		{"MAX_TRANSACTIONS", func(n uint64) { c.MaxTransactions = int(n) }},
		{"RATE_LIMIT_CALLS", func(n uint64) { c.RateLimitCalls = int(n) }},
		{"RATE_LIMIT_WINDOW_SECONDS", func(n uint64) { c.RateLimitWindow = int(n) }},
		{"START_BLOCK", func(n uint64) { c.StartBlock = n }},
	} {
		v := os.Getenv(envPrefix + f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, f.key, err)
		}
		f.set(n)
	}
	return nil
}

func defaults(dir string) *Config {
	return &Config{
		RPCURL:          defaultRPCURL,
		Currency:        defaultCurrency,
		BatchSize:       defaultBatchSize,
		MaxTransactions: defaultMaxTransactions,
		RateLimitCalls:  defaultRateLimitCalls,
		RateLimitWindow: defaultRateLimitWindow,
		StartBlock:      0,
		configDir:       dir,
	}
}
