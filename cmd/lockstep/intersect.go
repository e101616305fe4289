package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/lockstep/pkg/ups"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var intersectCmd = &cobra.Command{
	Use:   "intersect [sets.yaml]",
	Short: "Intersect ultimately periodic sets",
	Long: `Reads a YAML (or JSON) list of sets, each given as
  {stem_len: n, stem: [...], loop_len: p, loop: [...]}
and prints their intersection and its first elements.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		take, _ := cmd.Flags().GetInt("take")
		if take < 0 {
			return fmt.Errorf("--take must not be negative, got %d", take)
		}

		var (
			data []byte
			err  error
		)
		if path := networkPath(args); path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return fmt.Errorf("failed to read sets: %w", err)
		}

		var encoded []ups.Encoded
		if err := yaml.Unmarshal(data, &encoded); err != nil {
			return fmt.Errorf("failed to parse sets: %w", err)
		}
		sets := make([]*ups.UPS, len(encoded))
		for i, enc := range encoded {
			if sets[i], err = enc.Decode(); err != nil {
				return fmt.Errorf("set %d: %w", i, err)
			}
		}

		combined, err := ups.IntersectAllContext(cmd.Context(), sets...)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, combined)
		fmt.Fprintln(out, combined.Take(take))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(intersectCmd)
	intersectCmd.Flags().Int("take", 10, "Number of leading elements to print")
}
