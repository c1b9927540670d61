// Package stats fetches per-table size and waste figures from the database.
package stats

import (
	"context"
	"database/sql"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Provider runs the bloat query once and serves the cached snapshot for
// the rest of the session.
type Provider struct {
	db     Querier
	query  string
	logger *zap.Logger

	fetched  bool
	snapshot []TableStat
}

func NewProvider(db Querier, logger *zap.Logger) *Provider {
	return &Provider{
		db:     db,
		query:  TableBloatSQL,
		logger: logger,
	}
}

// Fetch returns a copy of the cached statistics, querying the database
// only on the first successful call.
func (p *Provider) Fetch(ctx context.Context) ([]TableStat, error) {
	if !p.fetched {
		rows, err := p.load(ctx)
		if err != nil {
			return nil, err
		}
		p.snapshot = rows
		p.fetched = true
		p.logger.Debug("fetched table stats", zap.Int("tables", len(rows)))
	}
	return slices.Clone(p.snapshot), nil
}

func (p *Provider) load(ctx context.Context) ([]TableStat, error) {
	rows, err := p.db.QueryContext(ctx, p.query)
	if err != nil {
		return nil, &QueryError{Op: "query", Err: err}
	}
	defer rows.Close()

	var result []TableStat
	var invalid error
	for rows.Next() {
		var s TableStat
		if err := rows.Scan(&s.Schema, &s.Table, &s.SizeBytes, &s.WastedBytes, &s.UnwastedBytes); err != nil {
			return nil, &QueryError{Op: "scan", Err: err}
		}
		if err := s.Validate(); err != nil {
			invalid = multierr.Append(invalid, err)
			continue
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "query", Err: err}
	}
	if invalid != nil {
		return nil, &QueryError{Op: "validate", Err: invalid}
	}

	return result, nil
}
