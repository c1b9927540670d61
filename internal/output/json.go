package output

import (
	"encoding/json"
	"io"

	"github.com/jacobarthurs/pgroomba/internal/planner"
	"github.com/jacobarthurs/pgroomba/internal/reclaim"
)

type runJSON struct {
	reclaim.Result
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func RenderThresholdJSON(w io.Writer, summaries []planner.Summary) error {
	return RenderJSON(w, struct {
		Thresholds []planner.Summary `json:"thresholds"`
	}{summaries})
}

func RenderDetailJSON(w io.Writer, plan planner.Plan) error {
	return RenderJSON(w, plan)
}

func RenderRunJSON(w io.Writer, result reclaim.Result) error {
	return RenderJSON(w, runJSON{
		Result:    result,
		Completed: len(result.Completed()),
		Pending:   len(result.Pending()),
	})
}
