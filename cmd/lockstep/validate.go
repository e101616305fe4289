package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/lockstep/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [network]",
	Short: "Check the network for consistency",
	Long:  `Reports dangling links, nodes no start can reach and starts that can never reach a final node.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		net, err := app.LoadNetwork(networkPath(args), cmd.InOrStdin())
		if err != nil {
			return err
		}
		report, err := validator.ValidateNetwork(net, app.Config.Start, app.Config.Final)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d nodes, %d starts\n", len(net.Nodes), len(report.Starts))
		if len(report.Unreachable) > 0 {
			app.Logger.Warn("Unreachable nodes", "count", len(report.Unreachable))
			fmt.Fprintf(out, "unreachable: %s\n", strings.Join(report.Unreachable, ", "))
		}
		if err := report.Err(); err != nil {
			return err
		}
		fmt.Fprintln(out, "network is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
