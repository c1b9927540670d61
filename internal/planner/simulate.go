// Package planner simulates sequential VACUUM FULL runs over a set of table
// statistics and reports the disk space each run needs and frees.
package planner

import "github.com/jacobarthurs/pgroomba/internal/stats"

// Simulate selects every table whose waste ratio is at least threshold and
// accounts for rewriting them one after another, in the order given.
//
// Rewriting a table temporarily needs its unwasted size in extra space
// before the old files are dropped; only space freed by earlier tables can
// absorb that. Gain is therefore added after a step is recorded.
func Simulate(tables []stats.TableStat, threshold float64) Plan {
	plan := Plan{Threshold: threshold}

	var gain, overconsumption, rewrite int64
	for _, t := range tables {
		if t.SizeBytes == 0 {
			plan.Skipped = append(plan.Skipped, Skip{Stat: t, Reason: SkipZeroSize})
			continue
		}
		if float64(t.WastedBytes)/float64(t.SizeBytes) < threshold {
			plan.Skipped = append(plan.Skipped, Skip{Stat: t, Reason: SkipBelowThreshold})
			continue
		}

		consumption := gain - t.UnwastedBytes
		if consumption < overconsumption {
			overconsumption = consumption
		}
		rewrite += t.UnwastedBytes

		plan.Steps = append(plan.Steps, Step{
			Stat:                      t,
			CumulativeGain:            gain,
			Consumption:               consumption,
			CumulativeOverconsumption: overconsumption,
			RewriteBytes:              rewrite,
		})

		gain += t.WastedBytes
	}

	plan.RequiredFreeSpace = -overconsumption
	plan.TotalRewrite = rewrite
	plan.TotalGain = gain
	return plan
}

// Sweep runs an independent simulation per threshold over the same tables.
func Sweep(tables []stats.TableStat, thresholds []float64) []Summary {
	summaries := make([]Summary, 0, len(thresholds))
	for _, th := range thresholds {
		summaries = append(summaries, Simulate(tables, th).Summary())
	}
	return summaries
}
