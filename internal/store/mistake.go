package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// mistakeRepo implements MistakeRepo with ent's SQL builder.
type mistakeRepo struct {
	db *sql.DB
}

// Upsert is a single INSERT ... ON CONFLICT statement, so concurrent reports
// of the same pair never lose an increment.
func (r *mistakeRepo) Upsert(ctx context.Context, input, mistakeType, correction string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(mistakesTable).
		Columns("user_input", "mistake_type", "correct_answer", "frequency", "timestamp").
		Values(input, mistakeType, correction, 1, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_input", "mistake_type"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("correct_answer")
				u.SetExcluded("timestamp")
				u.Add("frequency", 1)
			}),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert mistake: %w", err)
	}
	return nil
}

func (r *mistakeRepo) Top(ctx context.Context, limit int) ([]MistakeRecord, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	d := entsql.Dialect(dialect.SQLite)
	query, args := d.Select("id", "user_input", "mistake_type", "correct_answer", "frequency", "timestamp").
		From(d.Table(mistakesTable)).
		OrderBy(entsql.Desc("frequency"), entsql.Asc("id")).
		Limit(limit).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query top mistakes: %w", err)
	}
	defer rows.Close()

	var records []MistakeRecord
	if err := entsql.ScanSlice(rows, &records); err != nil {
		return nil, fmt.Errorf("scan top mistakes: %w", err)
	}
	return records, nil
}

func (r *mistakeRepo) Summarize(ctx context.Context) ([]TypeCount, error) {
	d := entsql.Dialect(dialect.SQLite)
	query, args := d.Select("mistake_type", entsql.As(entsql.Count("*"), "count")).
		From(d.Table(mistakesTable)).
		GroupBy("mistake_type").
		OrderBy(entsql.Desc("count"), entsql.Asc("mistake_type")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize mistakes: %w", err)
	}
	defer rows.Close()

	var counts []TypeCount
	if err := entsql.ScanSlice(rows, &counts); err != nil {
		return nil, fmt.Errorf("scan mistake summary: %w", err)
	}
	return counts, nil
}
