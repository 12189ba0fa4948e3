package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/welltyped-systems/binsolver-go/config"
	"github.com/welltyped-systems/binsolver-go/internal/app"
	"github.com/welltyped-systems/binsolver-go/internal/mockapi"
)

var mockFlags struct {
	port    string
	latency time.Duration
	apiKeys string
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local mock of the BinSolver service",
	Long: `Serve GET /health, POST /v1/pack and GET /metrics locally. Pack requests
are validated like the real service and answered by a stub that places each
item unit in its own bin.

Examples:
  # Open mock on the default port ($PORT or 8080)
  binsolver mock

  # Require a key and delay every pack by two seconds
  binsolver mock --api-keys dev-key --latency 2s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = mockFlags.port
		}
		if cmd.Flags().Changed("api-keys") {
			cfg.Server.APIKeys = config.ParseAPIKeys(mockFlags.apiKeys)
		}

		router := app.InitializeApp(cfg, mockapi.WithLatency(mockFlags.latency))
		return app.NewServer(router, cfg.Server.Port).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mockCmd)

	mockCmd.Flags().StringVarP(&mockFlags.port, "port", "p", "", "listen port (default $PORT or 8080)")
	mockCmd.Flags().DurationVar(&mockFlags.latency, "latency", 0, "delay added to every pack response")
	mockCmd.Flags().StringVar(&mockFlags.apiKeys, "api-keys", "", "comma-separated accepted keys (default $API_KEYS; empty disables auth)")
}
