package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const scenarioRunsTable = "scenario_runs"

// scenarioRunRepo implements ScenarioRunRepo on the scenario_runs table.
type scenarioRunRepo struct {
	drv *entsql.Driver
}

func (r *scenarioRunRepo) Save(ctx context.Context, rec *ScenarioRunRecord) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(scenarioRunsTable).
		Columns("id", "scenario_id", "track", "score", "max_score",
			"checks_passed", "checks_total", "finished_at").
		Values(rec.ID, rec.ScenarioID, rec.Track, rec.Score, rec.MaxScore,
			rec.ChecksPassed, rec.ChecksTotal, rec.FinishedAt.UnixMilli()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save scenario run: %w", err)
	}
	return nil
}

func (r *scenarioRunRepo) List(ctx context.Context, opts QueryOpts) ([]ScenarioRunRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("id", "scenario_id", "track", "score", "max_score",
		"checks_passed", "checks_total", "finished_at").
		From(b.Table(scenarioRunsTable)).
		OrderBy(entsql.Desc("finished_at"), entsql.Desc("id"))

	if opts.ScenarioID != "" {
		sel.Where(entsql.EQ("scenario_id", opts.ScenarioID))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("finished_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("finished_at", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query scenario runs: %w", err)
	}
	defer rows.Close()

	var out []ScenarioRunRecord
	for rows.Next() {
		var (
			rec        ScenarioRunRecord
			finishedAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.ScenarioID, &rec.Track, &rec.Score, &rec.MaxScore,
			&rec.ChecksPassed, &rec.ChecksTotal, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan scenario run: %w", err)
		}
		rec.FinishedAt = time.UnixMilli(finishedAt).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read scenario runs: %w", err)
	}
	return out, nil
}

func (r *scenarioRunRepo) DeleteAll(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(scenarioRunsTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete scenario runs: %w", err)
	}
	return nil
}
