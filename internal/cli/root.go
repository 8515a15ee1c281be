// Package cli implements the rest-mapper command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the rest-mapper CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rest-mapper",
		Short:         "Reconcile REST API methods with REST client methods",
		Long:          "rest-mapper checks and maintains the method mapping between a REST API resource and a REST client resource.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringP("output", "o", "", "Output format (yaml|json)")

	for _, sub := range []*cobra.Command{newCheckCmd(), newImportCmd(), newRenderCmd()} {
		cmd.AddCommand(sub)
	}

	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		c.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
			return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
		})
	}

	return cmd
}
