// Package progress records which steps of each skill a learner has mastered.
//
// One record exists per skill, stored under "<namespace>:<skillID>" as a
// JSON-encoded UserSkillProgress. Records are created lazily, only ever grow
// by set union, and are never deleted. There is no locking: two processes
// writing the same key race with last-write-wins semantics.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/skillpath/internal/logger"
)

// UserSkillProgress is the persisted completion record for one skill.
type UserSkillProgress struct {
	SkillID          string   `json:"skillId"`
	CompletedStepIDs []string `json:"completedStepIds"`

	// MasteryStars is reserved for a future scoring rule. Nothing in the
	// engine computes or increments it.
	MasteryStars int `json:"masteryStars"`
}

// Empty returns the default record for a skill with no progress.
func Empty(skillID string) UserSkillProgress {
	return UserSkillProgress{SkillID: skillID, CompletedStepIDs: []string{}}
}

// IsCompleted reports whether stepID is recorded as completed.
func (p UserSkillProgress) IsCompleted(stepID string) bool {
	return slices.Contains(p.CompletedStepIDs, stepID)
}

// CompletedSet returns the completed step IDs as a set.
func (p UserSkillProgress) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(p.CompletedStepIDs))
	for _, id := range p.CompletedStepIDs {
		set[id] = true
	}
	return set
}

// withStep returns a copy of p with stepID added. Existing entries keep
// their order; the new ID is appended.
func (p UserSkillProgress) withStep(stepID string) (UserSkillProgress, bool) {
	if p.IsCompleted(stepID) {
		return p, false
	}
	out := p
	out.CompletedStepIDs = append(slices.Clone(p.CompletedStepIDs), stepID)
	return out, true
}

// ErrNotFound is returned by KV implementations for missing keys.
var ErrNotFound = errors.New("key not found")

// KV is the byte-level persistence boundary behind the store.
type KV interface {
	// Get returns the value at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value at key.
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the progress contract consumed by the session runtime and the
// path presentation.
type Store interface {
	// Get returns the progress for a skill. It never fails: missing or
	// unreadable records yield Empty(skillID).
	Get(ctx context.Context, skillID string) UserSkillProgress

	// CompleteStep adds stepID to the skill's completed set. It is
	// idempotent; added reports whether the set changed. Write failures are
	// returned to the caller.
	CompleteStep(ctx context.Context, skillID, stepID string) (added bool, err error)
}

// Key builds the storage key for a skill's record.
func Key(namespace, skillID string) string {
	return namespace + ":" + skillID
}

// KVStore implements Store on top of a KV backend.
type KVStore struct {
	kv        KV
	namespace string
	log       *logger.Logger
}

var _ Store = (*KVStore)(nil)

// NewKVStore creates a store that keeps records under namespace.
func NewKVStore(kv KV, namespace string, log *logger.Logger) *KVStore {
	return &KVStore{
		kv:        kv,
		namespace: namespace,
		log:       logger.OrNop(log).With("component", "progress"),
	}
}

func (s *KVStore) Get(ctx context.Context, skillID string) UserSkillProgress {
	p, err := s.load(ctx, skillID)
	if err != nil {
		s.log.Warn("progress read failed, using empty record", "skill_id", skillID, "error", err)
		return Empty(skillID)
	}
	return p
}

func (s *KVStore) CompleteStep(ctx context.Context, skillID, stepID string) (bool, error) {
	if skillID == "" || stepID == "" {
		return false, fmt.Errorf("complete step: skill and step IDs are required")
	}

	// A backend read failure aborts the write: falling back to an empty
	// record here would overwrite the learner's existing progress.
	current, err := s.load(ctx, skillID)
	if err != nil {
		return false, fmt.Errorf("read progress: %w", err)
	}
	next, added := current.withStep(stepID)

	// The full record is rewritten even when nothing changed; the write is
	// harmless and keeps the read-modify-write path uniform.
	raw, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("encode progress: %w", err)
	}
	key := Key(s.namespace, skillID)
	if err := s.kv.Put(ctx, key, raw); err != nil {
		return false, fmt.Errorf("write progress %s: %w", key, err)
	}

	s.log.Debug("step completed", "skill_id", skillID, "step_id", stepID, "added", added)
	return added, nil
}

// load reads a record. Missing and malformed records both yield the empty
// default; only backend failures are returned as errors.
func (s *KVStore) load(ctx context.Context, skillID string) (UserSkillProgress, error) {
	key := Key(s.namespace, skillID)
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Empty(skillID), nil
	}
	if err != nil {
		return UserSkillProgress{}, err
	}
	p, err := decode(skillID, raw)
	if err != nil {
		s.log.Warn("malformed progress record, using empty record", "key", key, "error", err)
		return Empty(skillID), nil
	}
	return p, nil
}

// decode parses a stored record, normalizing it so callers always see a
// de-duplicated, non-nil completed list bound to skillID.
func decode(skillID string, raw []byte) (UserSkillProgress, error) {
	var p UserSkillProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return UserSkillProgress{}, err
	}
	if p.SkillID != "" && p.SkillID != skillID {
		return UserSkillProgress{}, fmt.Errorf("record belongs to skill %q", p.SkillID)
	}
	p.SkillID = skillID

	seen := make(map[string]bool, len(p.CompletedStepIDs))
	ids := make([]string, 0, len(p.CompletedStepIDs))
	for _, id := range p.CompletedStepIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	p.CompletedStepIDs = ids
	if p.MasteryStars < 0 {
		p.MasteryStars = 0
	}
	return p, nil
}
