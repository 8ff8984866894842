package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const documentsTable = "documents"

// documentRepo implements DocumentRepo on the documents table.
type documentRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func (r *documentRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("value").
		From(b.Table(documentsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, false, fmt.Errorf("query document %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("read document %q: %w", key, err)
		}
		return nil, false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("scan document %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *documentRepo) Put(ctx context.Context, key string, raw []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(documentsTable).
		Columns("key", "value", "updated_at").
		Values(key, string(raw), r.now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(documentsTable).
		Where(entsql.EQ("key", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}
