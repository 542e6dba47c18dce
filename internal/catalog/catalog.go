package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	// ErrSkillNotFound is returned when a skill ID is not in the catalog.
	ErrSkillNotFound = errors.New("skill not found")

	// ErrStepNotFound is returned when a step ID is not part of a skill.
	ErrStepNotFound = errors.New("step not found")
)

// Catalog is the read-only source of skills consumed by the engine.
type Catalog interface {
	// Skills returns every skill tagged with the given domain, in catalog order.
	// An empty domain returns all skills.
	Skills(domain string) []SkillMaster

	// SkillByID returns the skill with the given ID.
	SkillByID(id string) (SkillMaster, bool)
}

// Index is an immutable in-memory catalog with precomputed lookups.
type Index struct {
	skills   []SkillMaster
	byID     map[string]int
	byDomain map[string][]int
	domains  []string
	flat     map[string][]SkillStep
	stepSeq  map[string]map[string]int
}

var _ Catalog = (*Index)(nil)

// NewIndex validates skills and builds the lookup indices.
func NewIndex(skills []SkillMaster) (*Index, error) {
	if err := Validate(skills); err != nil {
		return nil, err
	}
	return buildIndex(skills), nil
}

// buildIndex constructs all indices. The skills are cloned so later caller
// mutation cannot leak into the catalog.
func buildIndex(skills []SkillMaster) *Index {
	idx := &Index{
		skills:   slices.Clone(skills),
		byID:     make(map[string]int, len(skills)),
		byDomain: make(map[string][]int),
		flat:     make(map[string][]SkillStep, len(skills)),
		stepSeq:  make(map[string]map[string]int, len(skills)),
	}

	for i, s := range idx.skills {
		idx.byID[s.ID] = i
		if _, seen := idx.byDomain[s.Domain]; !seen {
			idx.domains = append(idx.domains, s.Domain)
		}
		idx.byDomain[s.Domain] = append(idx.byDomain[s.Domain], i)

		// Sequence numbers follow the canonical order, so the predecessor of
		// a step is always the step with sequence-1.
		steps := FlattenSteps(s)
		idx.flat[s.ID] = steps
		seq := make(map[string]int, len(steps))
		for n, st := range steps {
			seq[st.ID] = n
		}
		idx.stepSeq[s.ID] = seq
	}
	sort.Strings(idx.domains)

	return idx
}

// Skills returns the skills of a domain in catalog order. An empty domain
// returns every skill.
func (x *Index) Skills(domain string) []SkillMaster {
	if domain == "" {
		return slices.Clone(x.skills)
	}
	positions := x.byDomain[domain]
	result := make([]SkillMaster, 0, len(positions))
	for _, p := range positions {
		result = append(result, x.skills[p])
	}
	return result
}

// SkillByID returns the skill with the given ID.
func (x *Index) SkillByID(id string) (SkillMaster, bool) {
	p, ok := x.byID[id]
	if !ok {
		return SkillMaster{}, false
	}
	return x.skills[p], true
}

// GetSkill returns a skill by ID, or an error wrapping ErrSkillNotFound.
func (x *Index) GetSkill(id string) (SkillMaster, error) {
	s, ok := x.SkillByID(id)
	if !ok {
		return SkillMaster{}, fmt.Errorf("%w: %q", ErrSkillNotFound, id)
	}
	return s, nil
}

// Domains returns the distinct domain tags, sorted.
func (x *Index) Domains() []string {
	return slices.Clone(x.domains)
}

// Steps returns the canonical step order of a skill, or nil if unknown.
func (x *Index) Steps(skillID string) []SkillStep {
	return slices.Clone(x.flat[skillID])
}

// Step looks up one step of a skill.
func (x *Index) Step(skillID, stepID string) (SkillStep, error) {
	seq, ok := x.stepSeq[skillID]
	if !ok {
		return SkillStep{}, fmt.Errorf("%w: %q", ErrSkillNotFound, skillID)
	}
	n, ok := seq[stepID]
	if !ok {
		return SkillStep{}, fmt.Errorf("%w: %q in skill %q", ErrStepNotFound, stepID, skillID)
	}
	return x.flat[skillID][n], nil
}

// StepSequence returns the position of a step in its skill's canonical order.
func (x *Index) StepSequence(skillID, stepID string) (int, bool) {
	n, ok := x.stepSeq[skillID][stepID]
	return n, ok
}

// Predecessor returns the step immediately before stepID in canonical order.
// The first step has no predecessor.
func (x *Index) Predecessor(skillID, stepID string) (SkillStep, bool) {
	n, ok := x.StepSequence(skillID, stepID)
	if !ok || n == 0 {
		return SkillStep{}, false
	}
	return x.flat[skillID][n-1], true
}

// Len returns the number of skills in the catalog.
func (x *Index) Len() int {
	return len(x.skills)
}
