package reclaim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jacobarthurs/pgroomba/internal/planner"
	"github.com/jacobarthurs/pgroomba/internal/stats"
)

func newMockExecutor(t *testing.T, logger *zap.Logger) (*Executor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewExecutor(db, logger), mock
}

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := cur
		cur = cur.Add(step)
		return now
	}
}

func threeTablePlan() planner.Plan {
	return planner.Simulate([]stats.TableStat{
		{Schema: "public", Table: "a", SizeBytes: 1000, WastedBytes: 500, UnwastedBytes: 500},
		{Schema: "public", Table: "b", SizeBytes: 1000, WastedBytes: 600, UnwastedBytes: 400},
		{Schema: "public", Table: "c", SizeBytes: 1000, WastedBytes: 700, UnwastedBytes: 300},
	}, 0.1)
}

func TestStatement(t *testing.T) {
	tests := []struct {
		schema, table string
		want          string
	}{
		{"public", "t1", `VACUUM FULL ANALYZE "public"."t1";`},
		{"Sales", "OrderItems", `VACUUM FULL ANALYZE "Sales"."OrderItems";`},
		{"public", `we"ird`, `VACUUM FULL ANALYZE "public"."we""ird";`},
		{"my schema", "t.x", `VACUUM FULL ANALYZE "my schema"."t.x";`},
	}

	for _, tt := range tests {
		if got := Statement(tt.schema, tt.table); got != tt.want {
			t.Errorf("Statement(%q, %q) = %s, want %s", tt.schema, tt.table, got, tt.want)
		}
	}
}

func TestExecute_DryRunIssuesNothing(t *testing.T) {
	e, mock := newMockExecutor(t, zap.NewNop())
	plan := planner.Simulate([]stats.TableStat{
		{Schema: "public", Table: "t1", SizeBytes: 1000, WastedBytes: 500, UnwastedBytes: 500},
	}, 0.1)

	result, err := e.Execute(context.Background(), plan, true)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.DryRun {
		t.Error("DryRun = false, want true")
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	entry := result.Entries[0]
	if entry.Statement != `VACUUM FULL ANALYZE "public"."t1";` {
		t.Errorf("Statement = %s", entry.Statement)
	}
	if entry.Outcome != OutcomePlanned {
		t.Errorf("Outcome = %s, want planned", entry.Outcome)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestExecute_RunsInPlanOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e, mock := newMockExecutor(t, zap.New(core))
	e.now = fakeClock(1500 * time.Millisecond)

	mock.ExpectExec(`VACUUM FULL ANALYZE "public"."a";`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`VACUUM FULL ANALYZE "public"."b";`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`VACUUM FULL ANALYZE "public"."c";`).WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := e.Execute(context.Background(), threeTablePlan(), false)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if n := len(result.Completed()); n != 3 {
		t.Fatalf("expected 3 completed entries, got %d", n)
	}
	for _, entry := range result.Entries {
		if entry.Duration != 1500*time.Millisecond {
			t.Errorf("%s: Duration = %v, want 1.5s", entry.Table, entry.Duration)
		}
	}
	if got := result.TotalDuration(); got != 4500*time.Millisecond {
		t.Errorf("TotalDuration = %v, want 4.5s", got)
	}
	if n := logs.FilterMessage("reclaimed").Len(); n != 3 {
		t.Errorf("expected 3 reclaimed log entries, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e, mock := newMockExecutor(t, zap.New(core))
	e.now = fakeClock(time.Second)

	dbErr := errors.New("could not extend file: No space left on device")
	mock.ExpectExec(`VACUUM FULL ANALYZE "public"."a";`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`VACUUM FULL ANALYZE "public"."b";`).WillReturnError(dbErr)

	result, err := e.Execute(context.Background(), threeTablePlan(), false)
	if err == nil {
		t.Fatal("expected error")
	}

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecutionError, got %T", err)
	}
	if execErr.Table != "b" {
		t.Errorf("failed table = %q, want b", execErr.Table)
	}
	if !errors.Is(err, dbErr) {
		t.Error("ExecutionError should wrap the database error")
	}

	want := []Outcome{OutcomeCompleted, OutcomeFailed, OutcomeNotAttempted}
	if len(result.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(result.Entries))
	}
	for i, o := range want {
		if result.Entries[i].Outcome != o {
			t.Errorf("entry %d (%s): Outcome = %s, want %s", i, result.Entries[i].Table, result.Entries[i].Outcome, o)
		}
	}
	if result.Entries[1].Error == "" {
		t.Error("failed entry should carry the error message")
	}
	if result.Entries[2].Duration != 0 {
		t.Errorf("unattempted entry has duration %v", result.Entries[2].Duration)
	}
	if pending := result.Pending(); len(pending) != 1 || pending[0].Table != "c" {
		t.Errorf("Pending = %+v, want [c]", pending)
	}
	if n := logs.FilterMessage("reclamation failed").Len(); n != 1 {
		t.Errorf("expected 1 failure log entry, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestExecute_EmptyPlan(t *testing.T) {
	e, mock := newMockExecutor(t, zap.NewNop())

	result, err := e.Execute(context.Background(), planner.Plan{}, false)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(result.Entries))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}
