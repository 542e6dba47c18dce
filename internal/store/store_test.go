package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{progressTable, rewardTable, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ProgressKV().Put(ctx, "skill-progress:sk", []byte(`{"skillId":"sk"}`)))
	require.NoError(t, s.EventRepo().AppendRewardEvent(ctx, RewardEventData{SkillID: "sk", StepID: "s1", XP: 10}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.ProgressKV().Get(ctx, "skill-progress:sk")
	require.NoError(t, err)
	assert.JSONEq(t, `{"skillId":"sk"}`, string(got))

	require.NoError(t, s.EventRepo().AppendRewardEvent(ctx, RewardEventData{SkillID: "sk", StepID: "s2", XP: 5}))
	events, err := s.EventRepo().QueryRewardEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].Sequence, "sequence continues across reopen")
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestProgressKV_GetMissing(t *testing.T) {
	kv := openTestStore(t).ProgressKV()

	_, err := kv.Get(context.Background(), "skill-progress:nope")
	assert.ErrorIs(t, err, progress.ErrNotFound)
}

func TestProgressKV_PutOverwrites(t *testing.T) {
	kv := openTestStore(t).ProgressKV()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "k", []byte("one")))
	require.NoError(t, kv.Put(ctx, "k", []byte("two")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestProgressKV_BacksProgressStore(t *testing.T) {
	s := openTestStore(t)
	ps := progress.NewKVStore(s.ProgressKV(), "skill-progress", nil)
	ctx := context.Background()

	added, err := ps.CompleteStep(ctx, "sk-ai-architect", "s1")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = ps.CompleteStep(ctx, "sk-ai-architect", "s1")
	require.NoError(t, err)
	assert.False(t, added)
	_, err = ps.CompleteStep(ctx, "sk-ai-architect", "s2")
	require.NoError(t, err)

	p := ps.Get(ctx, "sk-ai-architect")
	assert.Equal(t, []string{"s1", "s2"}, p.CompletedStepIDs)

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+progressTable).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRewardEvents_QueryNewestFirst(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	awards := []RewardEventData{
		{SessionID: "a", SkillID: "sk-1", StepID: "s1", XP: 25},
		{SessionID: "b", SkillID: "sk-2", StepID: "n1", XP: 20},
		{SessionID: "c", SkillID: "sk-1", StepID: "s2", XP: 30},
	}
	for _, a := range awards {
		require.NoError(t, repo.AppendRewardEvent(ctx, a))
	}

	all, err := repo.QueryRewardEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s2", all[0].StepID)
	assert.Equal(t, int64(3), all[0].Sequence)
	assert.Equal(t, "s1", all[2].StepID)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	limited, err := repo.QueryRewardEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(3), limited[0].Sequence)

	after, err := repo.QueryRewardEvents(ctx, QueryOpts{After: 1, Before: 3})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "n1", after[0].StepID)

	bySkill, err := repo.QueryRewardEvents(ctx, QueryOpts{SkillID: "sk-1"})
	require.NoError(t, err)
	assert.Len(t, bySkill, 2)

	byStep, err := repo.QueryRewardEvents(ctx, QueryOpts{SkillID: "sk-1", StepID: "s2"})
	require.NoError(t, err)
	require.Len(t, byStep, 1)
	assert.Equal(t, "c", byStep[0].SessionID)
}

func TestRewardTotals(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	empty, err := repo.RewardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalXP)
	assert.Empty(t, empty.BySkill)

	for _, a := range []RewardEventData{
		{SkillID: "sk-1", StepID: "s1", XP: 25},
		{SkillID: "sk-1", StepID: "s2", XP: 30},
		{SkillID: "sk-2", StepID: "n1", XP: 20},
	} {
		require.NoError(t, repo.AppendRewardEvent(ctx, a))
	}

	totals, err := repo.RewardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 75, totals.TotalXP)
	assert.Equal(t, 3, totals.Awards)
	assert.Equal(t, map[string]int{"sk-1": 55, "sk-2": 20}, totals.BySkill)
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("SKILLPATH_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Dir(want))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("SKILLPATH_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "skillpath", "skillpath.db"), got)
}
