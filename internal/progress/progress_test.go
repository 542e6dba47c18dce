package progress

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyKV wraps MemoryKV and injects failures.
type faultyKV struct {
	*MemoryKV
	getErr error
	putErr error
	puts   int
}

func (f *faultyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *faultyKV) Put(ctx context.Context, key string, value []byte) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryKV.Put(ctx, key, value)
}

func newTestStore() (*KVStore, *MemoryKV) {
	kv := NewMemoryKV()
	return NewKVStore(kv, "skill-progress", nil), kv
}

func TestGet_UntouchedSkillIsEmpty(t *testing.T) {
	s, _ := newTestStore()

	p := s.Get(context.Background(), "sk-ai-architect")

	assert.Equal(t, "sk-ai-architect", p.SkillID)
	assert.NotNil(t, p.CompletedStepIDs)
	assert.Empty(t, p.CompletedStepIDs)
	assert.Equal(t, 0, p.MasteryStars)
}

func TestCompleteStep_PersistsUnderNamespacedKey(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()

	added, err := s.CompleteStep(ctx, "sk-ai-architect", "s1")
	require.NoError(t, err)
	assert.True(t, added)

	raw, err := kv.Get(ctx, "skill-progress:sk-ai-architect")
	require.NoError(t, err)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, "sk-ai-architect", stored["skillId"])
	assert.Equal(t, []any{"s1"}, stored["completedStepIds"])
	assert.EqualValues(t, 0, stored["masteryStars"])
}

func TestCompleteStep_Idempotent(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.CompleteStep(ctx, "sk", "s1")
	require.NoError(t, err)
	once := s.Get(ctx, "sk")

	added, err := s.CompleteStep(ctx, "sk", "s1")
	require.NoError(t, err)
	assert.False(t, added)

	twice := s.Get(ctx, "sk")
	assert.Equal(t, once.CompletedStepIDs, twice.CompletedStepIDs)
	assert.Equal(t, []string{"s1"}, twice.CompletedStepIDs)
}

func TestCompleteStep_UnionKeepsOrder(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	for _, id := range []string{"s2", "s1", "s2", "s3", "s1"} {
		_, err := s.CompleteStep(ctx, "sk", id)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"s2", "s1", "s3"}, s.Get(ctx, "sk").CompletedStepIDs)
}

func TestCompleteStep_SkillsIsolated(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()

	_, err := s.CompleteStep(ctx, "a", "s1")
	require.NoError(t, err)
	_, err = s.CompleteStep(ctx, "b", "s9")
	require.NoError(t, err)

	assert.Equal(t, []string{"s1"}, s.Get(ctx, "a").CompletedStepIDs)
	assert.Equal(t, []string{"s9"}, s.Get(ctx, "b").CompletedStepIDs)
	assert.Equal(t, []string{"skill-progress:a", "skill-progress:b"}, kv.Keys())
}

func TestGet_MalformedRecordFailsOpen(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"completedStepIds": "s1"}`},
		{"other skill", `{"skillId": "elsewhere", "completedStepIds": ["s1"]}`},
		{"array", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv := newTestStore()
			ctx := context.Background()
			require.NoError(t, kv.Put(ctx, Key("skill-progress", "sk"), []byte(tt.raw)))

			p := s.Get(ctx, "sk")
			assert.Equal(t, Empty("sk"), p)
		})
	}
}

func TestGet_NormalizesDuplicates(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()
	raw := `{"skillId": "sk", "completedStepIds": ["s1", "s1", "", "s2"], "masteryStars": 2}`
	require.NoError(t, kv.Put(ctx, Key("skill-progress", "sk"), []byte(raw)))

	p := s.Get(ctx, "sk")
	assert.Equal(t, []string{"s1", "s2"}, p.CompletedStepIDs)
	assert.Equal(t, 2, p.MasteryStars)
}

func TestCompleteStep_OverwritesMalformedRecord(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, Key("skill-progress", "sk"), []byte("garbage")))

	_, err := s.CompleteStep(ctx, "sk", "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, s.Get(ctx, "sk").CompletedStepIDs)
}

func TestGet_BackendErrorFailsOpen(t *testing.T) {
	kv := &faultyKV{MemoryKV: NewMemoryKV(), getErr: errors.New("disk on fire")}
	s := NewKVStore(kv, "ns", nil)

	assert.Equal(t, Empty("sk"), s.Get(context.Background(), "sk"))
}

func TestCompleteStep_ReadErrorDoesNotOverwrite(t *testing.T) {
	kv := &faultyKV{MemoryKV: NewMemoryKV()}
	s := NewKVStore(kv, "ns", nil)
	ctx := context.Background()
	_, err := s.CompleteStep(ctx, "sk", "s1")
	require.NoError(t, err)

	kv.getErr = errors.New("timeout")
	kv.puts = 0
	_, err = s.CompleteStep(ctx, "sk", "s2")
	require.Error(t, err)
	assert.Equal(t, 0, kv.puts, "no write may happen after a failed read")

	kv.getErr = nil
	assert.Equal(t, []string{"s1"}, s.Get(ctx, "sk").CompletedStepIDs)
}

func TestCompleteStep_WriteErrorSurfaced(t *testing.T) {
	quota := errors.New("quota exceeded")
	kv := &faultyKV{MemoryKV: NewMemoryKV(), putErr: quota}
	s := NewKVStore(kv, "ns", nil)

	added, err := s.CompleteStep(context.Background(), "sk", "s1")
	require.Error(t, err)
	assert.ErrorIs(t, err, quota)
	assert.False(t, added)
	assert.Empty(t, s.Get(context.Background(), "sk").CompletedStepIDs)
}

func TestCompleteStep_RequiresIDs(t *testing.T) {
	s, _ := newTestStore()
	_, err := s.CompleteStep(context.Background(), "", "s1")
	assert.Error(t, err)
	_, err = s.CompleteStep(context.Background(), "sk", "")
	assert.Error(t, err)
}

func TestCompletedSet(t *testing.T) {
	p := UserSkillProgress{SkillID: "sk", CompletedStepIDs: []string{"a", "b"}}
	set := p.CompletedSet()
	assert.True(t, set["a"])
	assert.True(t, set["b"])
	assert.False(t, set["c"])
	assert.True(t, p.IsCompleted("a"))
	assert.False(t, p.IsCompleted("c"))
}
