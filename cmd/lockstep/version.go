package main

import (
	"fmt"

	"github.com/aretw0/lockstep"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lockstep",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lockstep version %s\n", lockstep.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
