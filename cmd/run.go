/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacobarthurs/pgroomba/internal/output"
	"github.com/jacobarthurs/pgroomba/internal/planner"
	"github.com/jacobarthurs/pgroomba/internal/reclaim"
)

var runCmd = &cobra.Command{
	Use:   `run [threshold ["dry"]]`,
	Short: "Reclaim bloated tables with VACUUM FULL ANALYZE",
	Long: `Run VACUUM FULL ANALYZE on every table whose waste ratio is at least the
threshold, one table at a time, in the same order the reports use.

Each table is rewritten before its old files are released, so check the free
space reported by "pgroomba report threshold_detail" first. The run stops at the
first failing statement and lists the tables it did not reach.

Pass "dry" after the threshold (or --dry-run) to print the statements without
executing them. [default threshold: .1]`,
	Example: `  pgroomba run 0.25 dry --profile prod
  pgroomba run 0.25 --profile prod
  pgroomba run --dry-run --format json`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if err := validateFormat(format); err != nil {
			return err
		}

		var arg string
		if len(args) > 0 {
			arg = args[0]
		}
		if len(args) > 1 {
			if !strings.EqualFold(args[1], "dry") {
				return fmt.Errorf("unexpected argument %q: only \"dry\" may follow the threshold", args[1])
			}
			dryRun = true
		}

		threshold, err := thresholdOrDefault(arg)
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tables, err := s.stats.Fetch(cmd.Context())
		if err != nil {
			return err
		}

		plan := planner.Simulate(tables, threshold)
		if !dryRun {
			s.logger.Info("starting reclamation",
				zap.Float64("threshold", threshold),
				zap.Int("tables", len(plan.Steps)),
				zap.String("required_free_space", output.HumanSize(plan.RequiredFreeSpace)),
				zap.String("expected_gain", output.HumanSize(plan.TotalGain)),
			)
		}

		result, execErr := reclaim.NewExecutor(s.db, s.logger).Execute(cmd.Context(), plan, dryRun)

		var renderErr error
		if format == "json" {
			renderErr = output.RenderRunJSON(cmd.OutOrStdout(), result)
		} else {
			renderErr = output.RenderRunText(cmd.OutOrStdout(), result)
		}
		if execErr != nil {
			return execErr
		}
		return renderErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addConnectionFlags(runCmd)
	runCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
	runCmd.Flags().Bool("dry-run", false, "Print statements without executing them")
}
