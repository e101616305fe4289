package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/lockstep/internal/cli"
	"github.com/aretw0/lockstep/internal/config"
	"github.com/aretw0/lockstep/internal/presentation/tui"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lockstep",
	Short: "Lockstep finds when ghosts walking a network all stand on final nodes",
	Long: `Lockstep reads a network of nodes with left/right successors and an
instruction string, follows every start node in lockstep and reports the first
step at which all of them stand on a final node at once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(cli.FlagConfig, config.DefaultPath, "Config file (optional unless set explicitly)")
	flags.String(cli.FlagLogLevel, "warn", "Log level: debug, info, warn or error")
	flags.String(cli.FlagStart, "suffix="+domain.DefaultStartSuffix, "Start node selector: name=ID or suffix=S")
	flags.String(cli.FlagFinal, "suffix="+domain.DefaultFinalSuffix, "Final node selector: name=ID or suffix=S")
	flags.Int(cli.FlagConcurrency, 0, "Trajectories explored at once (0 means GOMAXPROCS)")
	flags.String(cli.FlagCache, config.CacheMemory, "Result cache: memory, redis or none")
	flags.String(cli.FlagRedisAddr, "", "Redis address for the redis cache")
}

// loadConfig reads the config file and applies explicit flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString(cli.FlagConfig)
	cfg, err := config.Load(path, cmd.Flags().Changed(cli.FlagConfig))
	if err != nil {
		return cfg, err
	}
	if err := cli.ApplyFlags(cmd.Flags(), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupApp builds the shared collaborators for a command.
func setupApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.Setup(cmd.Context(), cfg)
}

// networkPath returns the network argument, "-" meaning stdin.
func networkPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// isTTY reports whether w is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}
