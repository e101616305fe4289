package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/lockstep/internal/presentation/tui"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [network]",
	Short: "Show the stem, loop and first hits of every trajectory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hits, _ := cmd.Flags().GetInt("hits")
		if hits < 1 {
			return fmt.Errorf("--hits must be at least 1, got %d", hits)
		}

		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		net, err := app.LoadNetwork(networkPath(args), cmd.InOrStdin())
		if err != nil {
			return err
		}
		solver := app.Solver()
		trajectories, err := solver.Trajectories(cmd.Context(), net)
		if err != nil {
			return err
		}
		sol, err := solver.Solve(cmd.Context(), net)
		if err != nil && !errors.Is(err, domain.ErrNoSolution) {
			return err
		}

		md := tui.Report(trajectories, sol, hits)
		out := cmd.OutOrStdout()
		if isTTY(out) {
			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			if md, err = render(md); err != nil {
				return err
			}
		}
		_, err = fmt.Fprint(out, md)
		return err
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Int("hits", 5, "Number of leading hits shown per trajectory")
}
