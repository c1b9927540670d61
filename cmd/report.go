/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobarthurs/pgroomba/internal/output"
	"github.com/jacobarthurs/pgroomba/internal/planner"
)

const (
	reportThreshold       = "threshold"
	reportThresholdDetail = "threshold_detail"
)

var reportCmd = &cobra.Command{
	Use:   "report [threshold [t1,t2,...] | threshold_detail [threshold]]",
	Short: "Simulate reclamation runs without changing anything",
	Long: `Simulate VACUUM FULL runs over the current bloat estimates.

Report types:
  threshold         One row per threshold with the free space needed before the
                    run (Need), the table data rewritten (Write) and the space
                    freed (Freed). Override the thresholds with a comma-separated
                    list. [default: .01,.05,.1,.25,.5,.75]
  threshold_detail  One row per table selected at a single threshold, in the order
                    the run would process them. [default: .1]

Defaults can also be set in the config file.`,
	Example: `  pgroomba report
  pgroomba report threshold .05,.2,.4
  pgroomba report threshold_detail 0.25 --unit human
  pgroomba report threshold_detail --format json`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		unitFlag, _ := cmd.Flags().GetString("unit")

		if err := validateFormat(format); err != nil {
			return err
		}
		unit, err := output.ParseUnit(unitFlag)
		if err != nil {
			return err
		}

		kind := reportThreshold
		if len(args) > 0 {
			kind = args[0]
		}
		var arg string
		if len(args) > 1 {
			arg = args[1]
		}

		switch kind {
		case reportThreshold:
			thresholds, err := thresholdsOrDefault(arg)
			if err != nil {
				return err
			}
			return runThresholdReport(cmd, thresholds, format)
		case reportThresholdDetail:
			threshold, err := thresholdOrDefault(arg)
			if err != nil {
				return err
			}
			return runDetailReport(cmd, threshold, format, unit)
		default:
			return fmt.Errorf("unknown report type %q: must be %q or %q", kind, reportThreshold, reportThresholdDetail)
		}
	},
}

func runThresholdReport(cmd *cobra.Command, thresholds []float64, format string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tables, err := s.stats.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	summaries := planner.Sweep(tables, thresholds)
	if format == "json" {
		return output.RenderThresholdJSON(cmd.OutOrStdout(), summaries)
	}
	return output.RenderThresholdText(cmd.OutOrStdout(), summaries)
}

func runDetailReport(cmd *cobra.Command, threshold float64, format string, unit output.Unit) error {
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
	if format == "json" {
		return output.RenderDetailJSON(cmd.OutOrStdout(), plan)
	}
	return output.RenderDetailText(cmd.OutOrStdout(), plan, unit)
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addConnectionFlags(reportCmd)
	reportCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
	reportCmd.Flags().String("unit", string(output.UnitKilobytes), "Size unit for threshold_detail: B, kB, human")
}
