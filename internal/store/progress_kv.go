package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skillpath/internal/progress"
)

// ProgressKV stores progress records in the progress_records table, one row
// per key.
type ProgressKV struct {
	drv *entsql.Driver
}

var _ progress.KV = (*ProgressKV)(nil)

// Get returns the value stored under key, or progress.ErrNotFound.
func (p *ProgressKV) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(progressTable)).
		Where(entsql.EQ("progress_key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := p.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query progress %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query progress %s: %w", key, err)
		}
		return nil, progress.ErrNotFound
	}
	var value []byte
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scan progress %s: %w", key, err)
	}
	return value, nil
}

// Put writes value under key, replacing any previous value.
func (p *ProgressKV) Put(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(progressTable).
		Columns("progress_key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("progress_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := p.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert progress %s: %w", key, err)
	}
	return nil
}
