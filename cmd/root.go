package cmd

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"walletscan/internal/chain"
	"walletscan/internal/config"
	"walletscan/internal/logging"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X walletscan/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
	rpcURL  string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "walletscan",
	Short: "Wallet history over a plain JSON-RPC endpoint",
	Long: `walletscan — find a wallet's first transaction and recent history
using nothing but eth_blockNumber and eth_getBlockByNumber.

  Works against any EVM JSON-RPC endpoint, including ones without
  address indexing. Block ranges are binary-searched and batch-fetched
  under a configurable rate limit.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if rpcURL != "" {
			cfg.RPCURL = rpcURL
		}
		if verbose {
			logging.SetVerbose()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// WALLETSCAN_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("WALLETSCAN_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.walletscan)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", "", "JSON-RPC endpoint (overrides config)")

	rootCmd.AddCommand(
		historyCmd,
		locateCmd,
		tipCmd,
	)
}

// newClient builds the rate-limited RPC client shared by a single run.
func newClient() *chain.Client {
	limiter := chain.NewWindowLimiter(cfg.RateLimitCalls, cfg.RateWindow())
	return chain.NewClient(cfg.RPCURL, limiter)
}

// parseAddress validates s and returns it in canonical hex form.
func parseAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s).Hex(), nil
}
