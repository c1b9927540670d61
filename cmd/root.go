/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var Version = "dev"

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}
	rootCmd.Version = Version

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
}

var rootCmd = &cobra.Command{
	Use:          "pgroomba",
	SilenceUsage: true,
	Short:        "Report and reclaim PostgreSQL table bloat",
	Long: `pgroomba estimates per-table bloat in a PostgreSQL database and reclaims it
with VACUUM FULL ANALYZE, one table at a time.

Reports simulate a run for one or more waste thresholds and show how much free
disk space the run needs before it starts, how much table data it rewrites, and
how much space it frees.`,
	Example: `  # Compare thresholds
  pgroomba report --profile prod

  # Per-table detail for a threshold
  pgroomba report threshold_detail 0.25 -H db.internal -s app -u admin -p secret

  # Print the statements a run would issue
  pgroomba run 0.25 dry --profile prod`,
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
