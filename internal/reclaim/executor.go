// Package reclaim issues VACUUM FULL statements for a reclamation plan.
package reclaim

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jacobarthurs/pgroomba/internal/planner"
)

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Statement returns the VACUUM FULL ANALYZE statement for a table, with both
// identifiers quoted.
func Statement(schema, table string) string {
	return fmt.Sprintf("VACUUM FULL ANALYZE %s;", pgx.Identifier{schema, table}.Sanitize())
}

type Executor struct {
	db     Execer
	logger *zap.Logger
	now    func() time.Time
}

func NewExecutor(db Execer, logger *zap.Logger) *Executor {
	return &Executor{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Execute runs the plan one table at a time. A dry run only lists the
// statements. On the first failing statement the run stops; the returned
// Result still describes every step and the error is an *ExecutionError.
func (e *Executor) Execute(ctx context.Context, plan planner.Plan, dryRun bool) (Result, error) {
	result := Result{DryRun: dryRun, Entries: make([]Entry, 0, len(plan.Steps))}
	for _, step := range plan.Steps {
		result.Entries = append(result.Entries, Entry{
			Schema:    step.Stat.Schema,
			Table:     step.Stat.Table,
			Statement: Statement(step.Stat.Schema, step.Stat.Table),
			Outcome:   OutcomePlanned,
		})
	}
	if dryRun {
		return result, nil
	}

	for i := range result.Entries {
		entry := &result.Entries[i]
		log := e.logger.With(zap.String("schema", entry.Schema), zap.String("table", entry.Table))
		log.Debug("executing", zap.String("statement", entry.Statement))

		start := e.now()
		_, err := e.db.ExecContext(ctx, entry.Statement)
		entry.Duration = e.now().Sub(start)

		if err != nil {
			entry.Outcome = OutcomeFailed
			entry.Error = err.Error()
			for j := i + 1; j < len(result.Entries); j++ {
				result.Entries[j].Outcome = OutcomeNotAttempted
			}
			log.Error("reclamation failed", zap.Duration("duration", entry.Duration), zap.Error(err))
			return result, &ExecutionError{Schema: entry.Schema, Table: entry.Table, Err: err}
		}

		entry.Outcome = OutcomeCompleted
		log.Info("reclaimed", zap.Duration("duration", entry.Duration))
	}

	return result, nil
}
