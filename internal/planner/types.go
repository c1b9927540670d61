package planner

import "github.com/jacobarthurs/pgroomba/internal/stats"

// Step is one table selected for reclamation, with the running accounting
// of the sequence up to that table.
type Step struct {
	Stat stats.TableStat `json:"stat"`

	// Space freed by the steps before this one.
	CumulativeGain int64 `json:"cumulative_gain"`
	// Free-space balance while this table is being rewritten.
	Consumption               int64 `json:"consumption"`
	CumulativeOverconsumption int64 `json:"cumulative_overconsumption"`
	RewriteBytes              int64 `json:"rewrite_bytes"`
}

type SkipReason string

const (
	SkipZeroSize       SkipReason = "zero_size"
	SkipBelowThreshold SkipReason = "below_threshold"
)

type Skip struct {
	Stat   stats.TableStat `json:"stat"`
	Reason SkipReason      `json:"reason"`
}

// Plan is the ordered reclamation sequence for one threshold.
type Plan struct {
	Threshold float64 `json:"threshold"`
	Steps     []Step  `json:"steps"`
	Skipped   []Skip  `json:"skipped,omitempty"`

	RequiredFreeSpace int64 `json:"required_free_space"`
	TotalRewrite      int64 `json:"total_rewrite"`
	TotalGain         int64 `json:"total_gain"`
}

// Summary holds the totals of a plan without its steps.
type Summary struct {
	Threshold         float64 `json:"threshold"`
	Tables            int     `json:"tables"`
	RequiredFreeSpace int64   `json:"required_free_space"`
	TotalRewrite      int64   `json:"total_rewrite"`
	TotalGain         int64   `json:"total_gain"`
}

func (p Plan) Summary() Summary {
	return Summary{
		Threshold:         p.Threshold,
		Tables:            len(p.Steps),
		RequiredFreeSpace: p.RequiredFreeSpace,
		TotalRewrite:      p.TotalRewrite,
		TotalGain:         p.TotalGain,
	}
}
