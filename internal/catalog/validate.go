package catalog

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on the given skill set.
// Returns a combined error describing all problems found, or nil if valid.
//
// MATCHING questions are accepted here: they are valid content that the
// session runtime refuses to run.
func Validate(skills []SkillMaster) error {
	var errs []string

	skillIDs := make(map[string]bool, len(skills))
	for _, s := range skills {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("skill %q: empty ID", s.Title))
			continue
		}
		if skillIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		skillIDs[s.ID] = true
		errs = append(errs, validateSkill(s)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateSkill(s SkillMaster) []string {
	var errs []string

	if !validCategory(s.Category) {
		errs = append(errs, fmt.Sprintf("skill %q: unknown category %q", s.ID, s.Category))
	}

	unitIDs := make(map[string]bool, len(s.Units))
	stepIDs := make(map[string]bool)
	for _, u := range s.Units {
		if unitIDs[u.ID] {
			errs = append(errs, fmt.Sprintf("skill %q: duplicate unit ID %q", s.ID, u.ID))
		}
		unitIDs[u.ID] = true

		for _, st := range u.Steps {
			prefix := fmt.Sprintf("skill %q step %q", s.ID, st.ID)
			if st.ID == "" {
				errs = append(errs, fmt.Sprintf("skill %q unit %q: step with empty ID", s.ID, u.ID))
				continue
			}
			// Gating walks the flattened list, so step IDs must be unique
			// across units, not just within one.
			if stepIDs[st.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate step ID", prefix))
			}
			stepIDs[st.ID] = true
			errs = append(errs, validateStep(prefix, st)...)
		}
	}
	return errs
}

func validateStep(prefix string, st SkillStep) []string {
	var errs []string

	switch st.Type {
	case StepLesson, StepQuiz, StepChallenge, StepTreasure:
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown step type %q", prefix, st.Type))
	}
	if st.XPReward < 0 {
		errs = append(errs, fmt.Sprintf("%s: xpReward must be >= 0, got %d", prefix, st.XPReward))
	}

	for i, b := range st.Slides {
		switch b.Type {
		case BlockText, BlockImage, BlockVideo, BlockPDF:
		default:
			errs = append(errs, fmt.Sprintf("%s slide %d: unknown block type %q", prefix, i, b.Type))
		}
		if strings.TrimSpace(b.Content) == "" {
			errs = append(errs, fmt.Sprintf("%s slide %d: empty content", prefix, i))
		}
	}

	questionIDs := make(map[string]bool, len(st.Questions))
	for _, q := range st.Questions {
		qp := fmt.Sprintf("%s question %q", prefix, q.ID)
		if questionIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate question ID", qp))
		}
		questionIDs[q.ID] = true

		switch q.Type {
		case QuestionMultipleChoice:
		case QuestionMatching:
			continue
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown question type %q", qp, q.Type))
			continue
		}

		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", qp, len(q.Options)))
		}
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option %q", qp, opt))
			}
			seen[opt] = true
		}
		if !seen[q.CorrectAnswer] {
			errs = append(errs, fmt.Sprintf("%s: correct answer %q is not one of the options", qp, q.CorrectAnswer))
		}
	}
	return errs
}

func validCategory(c Category) bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}
