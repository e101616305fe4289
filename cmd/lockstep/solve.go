package main

import (
	"encoding/json"

	"github.com/aretw0/lockstep/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [network]",
	Short: "Print the first step at which every start stands on a final node",
	Long: `Reads a network (text, or YAML when the file ends in .yaml/.yml; "-" or no
argument reads text from stdin) and prints the answer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		net, err := app.LoadNetwork(networkPath(args), cmd.InOrStdin())
		if err != nil {
			return err
		}
		sol, err := app.Solver().Solve(cmd.Context(), net)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sol)
		}
		tui.PrintAnswer(out, sol.Steps, isTTY(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Bool("json", false, "Print the full solution as JSON")
}
