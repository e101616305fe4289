package main

import (
	"fmt"

	"github.com/aretw0/lockstep/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [network]",
	Short: "Export the network as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the network. With --trace N the
first N steps taken from --from (default: the first start node) are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("trace")
		from, _ := cmd.Flags().GetString("from")

		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		net, err := app.LoadNetwork(networkPath(args), cmd.InOrStdin())
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if steps > 0 {
			if from == "" {
				starts := net.Select(app.Config.Start)
				if len(starts) == 0 {
					return fmt.Errorf("no start node matches %s", app.Config.Start)
				}
				from = starts[0]
			}
			path, err := net.Machine(app.Config.Final).Trace(from, []byte(net.Instructions), steps)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{VisitedNodes: path, CurrentNode: path[len(path)-1]}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(net, app.Config.Start, app.Config.Final, overlay))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("trace", 0, "Highlight the first N steps of a trajectory")
	graphCmd.Flags().String("from", "", "Node the traced trajectory starts from")
}
