package reclaim

import (
	"fmt"
	"time"
)

type Outcome string

const (
	OutcomePlanned      Outcome = "planned"
	OutcomeCompleted    Outcome = "completed"
	OutcomeFailed       Outcome = "failed"
	OutcomeNotAttempted Outcome = "not_attempted"
)

type Entry struct {
	Schema    string        `json:"schema"`
	Table     string        `json:"table"`
	Statement string        `json:"statement"`
	Outcome   Outcome       `json:"outcome"`
	Duration  time.Duration `json:"duration_ns,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Result is the ordered execution log of a run.
type Result struct {
	DryRun  bool    `json:"dry_run"`
	Entries []Entry `json:"entries"`
}

func (r Result) Completed() []Entry {
	return r.filter(OutcomeCompleted)
}

// Pending returns the entries that were never issued.
func (r Result) Pending() []Entry {
	return r.filter(OutcomeNotAttempted)
}

func (r Result) TotalDuration() time.Duration {
	var total time.Duration
	for _, e := range r.Entries {
		total += e.Duration
	}
	return total
}

func (r Result) filter(o Outcome) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Outcome == o {
			out = append(out, e)
		}
	}
	return out
}

type ExecutionError struct {
	Schema string
	Table  string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("reclaiming %s.%s: %v", e.Schema, e.Table, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
