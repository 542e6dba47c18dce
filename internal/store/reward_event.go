package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var rewardColumns = []string{"sequence", "timestamp", "session_id", "skill_id", "step_id", "xp"}

// eventRepo implements EventRepo over the reward_events table.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(rewardTable).
		Columns(rewardColumns...).
		Values(seqNum, time.Now().UTC(), data.SessionID, data.SkillID, data.StepID, data.XP).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(rewardColumns...).
		From(entsql.Table(rewardTable)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.SkillID != "" {
		sel = sel.Where(entsql.EQ("skill_id", opts.SkillID))
	}
	if opts.StepID != "" {
		sel = sel.Where(entsql.EQ("step_id", opts.StepID))
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var records []RewardEventRecord
	for rows.Next() {
		var rec RewardEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.SkillID, &rec.StepID, &rec.XP); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) RewardTotals(ctx context.Context) (RewardTotals, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("skill_id", "xp").
		From(entsql.Table(rewardTable)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return RewardTotals{}, fmt.Errorf("query reward totals: %w", err)
	}
	defer rows.Close()

	totals := RewardTotals{BySkill: make(map[string]int)}
	for rows.Next() {
		var (
			skillID string
			xp      int
		)
		if err := rows.Scan(&skillID, &xp); err != nil {
			return RewardTotals{}, fmt.Errorf("scan reward totals: %w", err)
		}
		totals.BySkill[skillID] += xp
		totals.TotalXP += xp
		totals.Awards++
	}
	if err := rows.Err(); err != nil {
		return RewardTotals{}, fmt.Errorf("query reward totals: %w", err)
	}
	return totals, nil
}
