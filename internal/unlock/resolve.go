// Package unlock computes sequential gating over a skill's canonical step
// order. Everything here is pure; callers recompute after every change to
// the completion set.
package unlock

import (
	"github.com/abhisek/skillpath/internal/catalog"
)

// Resolve maps every step to its status. Step i is completed if its ID is
// in completed, available if it is the first step or step i-1 is completed,
// and locked otherwise.
func Resolve(steps []catalog.SkillStep, completed map[string]bool) map[string]Status {
	result := make(map[string]Status, len(steps))
	for i, st := range steps {
		result[st.ID] = statusAt(steps, i, completed)
	}
	return result
}

// StepStatus pairs a step with its resolved status.
type StepStatus struct {
	UnitID string
	Step   catalog.SkillStep
	Status Status
}

// ResolvePath resolves a whole skill and returns the statuses in canonical
// order, annotated with the owning unit.
func ResolvePath(skill catalog.SkillMaster, completed map[string]bool) []StepStatus {
	steps := catalog.FlattenSteps(skill)
	result := make([]StepStatus, 0, len(steps))
	i := 0
	for _, u := range skill.Units {
		for _, st := range u.Steps {
			result = append(result, StepStatus{
				UnitID: u.ID,
				Step:   st,
				Status: statusAt(steps, i, completed),
			})
			i++
		}
	}
	return result
}

// Summary counts steps per status.
type Summary struct {
	Total     int
	Completed int
	Available int
	Locked    int
}

// Summarize counts a resolved status map.
func Summarize(statuses map[string]Status) Summary {
	sum := Summary{Total: len(statuses)}
	for _, s := range statuses {
		switch s {
		case StatusCompleted:
			sum.Completed++
		case StatusAvailable:
			sum.Available++
		case StatusLocked:
			sum.Locked++
		}
	}
	return sum
}

// NextAvailable returns the first available step in canonical order.
func NextAvailable(steps []catalog.SkillStep, completed map[string]bool) (catalog.SkillStep, bool) {
	for i, st := range steps {
		if statusAt(steps, i, completed) == StatusAvailable {
			return st, true
		}
	}
	return catalog.SkillStep{}, false
}

func statusAt(steps []catalog.SkillStep, i int, completed map[string]bool) Status {
	switch {
	case completed[steps[i].ID]:
		return StatusCompleted
	case i == 0 || completed[steps[i-1].ID]:
		return StatusAvailable
	default:
		return StatusLocked
	}
}
