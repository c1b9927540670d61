package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/logrusorgru/aurora/v4"

	"github.com/jacobarthurs/pgroomba/internal/planner"
	"github.com/jacobarthurs/pgroomba/internal/reclaim"
)

type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// table writes aligned rows through tabby and flushes them when done.
func (tw *textWriter) table(header []any, fill func(t *tabby.Tabby)) {
	if tw.err != nil {
		return
	}
	tab := tabwriter.NewWriter(tw.w, 0, 0, 2, ' ', 0)
	t := tabby.NewCustom(tab)
	t.AddHeader(header...)
	fill(t)
	tw.err = tab.Flush()
}

func RenderThresholdText(w io.Writer, summaries []planner.Summary) error {
	tw := &textWriter{w: w}

	tw.printf("%s\n\n", aurora.Bold("Threshold Report"))
	tw.table([]any{"THOLD", "NEED", "WRITE", "FREED", "TABLES"}, func(t *tabby.Tabby) {
		for _, s := range summaries {
			t.AddLine(
				fmt.Sprintf("%.2f", s.Threshold),
				HumanSize(s.RequiredFreeSpace),
				HumanSize(s.TotalRewrite),
				HumanSize(s.TotalGain),
				s.Tables,
			)
		}
	})

	return tw.err
}

func RenderDetailText(w io.Writer, plan planner.Plan, unit Unit) error {
	tw := &textWriter{w: w}

	tw.printf("%s (threshold %.2f, sizes in %s)\n\n", aurora.Bold("Threshold Detail"), plan.Threshold, unit)

	if len(plan.Steps) == 0 {
		tw.printf("%s\n", aurora.Yellow("No tables meet the threshold."))
	} else {
		tw.table([]any{"SCHEMA", "TABLE", "SIZE", "WASTED", "UNWASTED", "%WASTE", "GAIN", "CONSUMPTION"}, func(t *tabby.Tabby) {
			for _, s := range plan.Steps {
				t.AddLine(
					s.Stat.Schema,
					s.Stat.Table,
					FormatSize(s.Stat.SizeBytes, unit),
					FormatSize(s.Stat.WastedBytes, unit),
					FormatSize(s.Stat.UnwastedBytes, unit),
					fmt.Sprintf("%.2f", s.Stat.WasteRatio()*100),
					FormatSize(s.CumulativeGain, unit),
					FormatSize(s.Consumption, unit),
				)
			}
		})
	}

	var empty []string
	below := 0
	for _, sk := range plan.Skipped {
		switch sk.Reason {
		case planner.SkipZeroSize:
			empty = append(empty, sk.Stat.QualifiedName())
		case planner.SkipBelowThreshold:
			below++
		}
	}
	if len(empty) > 0 {
		tw.printf("\n%s %s\n", aurora.Yellow("Skipped (empty):"), strings.Join(empty, ", "))
	}
	if below > 0 {
		tw.printf("\n%d tables below threshold not shown.\n", below)
	}

	tw.printf("\npgroomba would require %s free space before running, rewrite %s of table data, and free up %s of disk space.\n",
		aurora.Bold(HumanSize(plan.RequiredFreeSpace)),
		HumanSize(plan.TotalRewrite),
		aurora.Green(HumanSize(plan.TotalGain)),
	)

	return tw.err
}

func RenderRunText(w io.Writer, result reclaim.Result) error {
	tw := &textWriter{w: w}

	for _, e := range result.Entries {
		switch e.Outcome {
		case reclaim.OutcomePlanned:
			tw.printf("%s\n", e.Statement)
		case reclaim.OutcomeCompleted:
			tw.printf("%s\n  %6.2f seconds\n", e.Statement, e.Duration.Seconds())
		case reclaim.OutcomeFailed:
			tw.printf("%s\n  %s %s\n", e.Statement, aurora.Red("FAILED"), e.Error)
		}
	}

	if result.DryRun {
		tw.printf("\n%d statements planned (dry run).\n", len(result.Entries))
		return tw.err
	}

	if pending := result.Pending(); len(pending) > 0 {
		names := make([]string, 0, len(pending))
		for _, e := range pending {
			names = append(names, e.Schema+"."+e.Table)
		}
		tw.printf("\n%s %s\n", aurora.Yellow("Not attempted:"), strings.Join(names, ", "))
	}

	tw.printf("\nReclaimed %d of %d tables in %.2f seconds.\n",
		len(result.Completed()), len(result.Entries), result.TotalDuration().Seconds())

	return tw.err
}
