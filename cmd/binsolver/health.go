package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("service is unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the service is reachable",
	Long: `Call GET /health and print "ok" when the service answers.
Exits non-zero otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		if !c.Health(cmd.Context()) {
			return fmt.Errorf("%s: %w", c.BaseURL(), errUnhealthy)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
