package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/welltyped-systems/binsolver-go/client"
	"github.com/welltyped-systems/binsolver-go/config"
	"github.com/welltyped-systems/binsolver-go/internal/logger"
)

// Global flags, overriding the environment when set
var rootFlags struct {
	apiKey    string
	baseURL   string
	timeout   string
	logLevel  string
	logPretty bool
}

var rootCmd = &cobra.Command{
	Use:   "binsolver",
	Short: "Client for the BinSolver 3D bin-packing service",
	Long: `binsolver submits packing requests to the BinSolver service and prints
the placements it returns.

Configuration is read from the environment (BINSOLVER_API_KEY,
BINSOLVER_BASE_URL, BINSOLVER_TIMEOUT, LOG_LEVEL, LOG_PRETTY) and may be
overridden with flags.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger.Init(cfg.Log.Level, cfg.Log.Pretty)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.apiKey, "api-key", "", "API key (default $BINSOLVER_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.baseURL, "base-url", "", "service URL (default $BINSOLVER_BASE_URL or "+config.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&rootFlags.timeout, "timeout", "", "per-call timeout in seconds or as a duration (default 30s)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.logPretty, "log-pretty", false, "human-readable log output")
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	flags := cmd.Flags()

	if flags.Changed("api-key") {
		cfg.Client.APIKey = rootFlags.apiKey
	}
	if flags.Changed("base-url") {
		cfg.Client.BaseURL = rootFlags.baseURL
	}
	if flags.Changed("timeout") {
		d, ok := config.ParseTimeout(rootFlags.timeout)
		if !ok {
			return cfg, fmt.Errorf("invalid --timeout %q", rootFlags.timeout)
		}
		cfg.Client.Timeout = d
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rootFlags.logLevel
	}
	if flags.Changed("log-pretty") {
		cfg.Log.Pretty = rootFlags.logPretty
	}
	return cfg, nil
}

// newClient builds a client from the environment and flags.
func newClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return client.NewFromConfig(cfg.Client, client.WithUserAgent("binsolver-cli/"+Version))
}
