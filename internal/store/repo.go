package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	SkillID string    // only events for this skill
	StepID  string    // only events for this step
}

// RewardEventData is an XP award to append.
type RewardEventData struct {
	SessionID string
	SkillID   string
	StepID    string
	XP        int
}

// RewardEventRecord is a stored XP award.
type RewardEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionID string
	SkillID   string
	StepID    string
	XP        int
}

// RewardTotals aggregates the reward log.
type RewardTotals struct {
	TotalXP int
	Awards  int
	BySkill map[string]int
}

// EventRepo provides append and query access to the reward event log.
type EventRepo interface {
	// AppendRewardEvent records an XP award with the next global sequence.
	AppendRewardEvent(ctx context.Context, data RewardEventData) error

	// QueryRewardEvents returns awards newest first.
	QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error)

	// RewardTotals sums XP overall and per skill.
	RewardTotals(ctx context.Context) (RewardTotals, error)
}
