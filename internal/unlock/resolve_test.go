package unlock

import (
	"testing"

	"github.com/abhisek/skillpath/internal/catalog"
)

func testSteps(ids ...string) []catalog.SkillStep {
	steps := make([]catalog.SkillStep, len(ids))
	for i, id := range ids {
		steps[i] = catalog.SkillStep{ID: id}
	}
	return steps
}

func TestResolve_Empty(t *testing.T) {
	got := Resolve(nil, map[string]bool{"x": true})
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestResolve_Rules(t *testing.T) {
	steps := testSteps("s1", "s2", "s3", "s4")

	tests := []struct {
		name      string
		completed map[string]bool
		want      map[string]Status
	}{
		{
			name:      "nothing completed",
			completed: nil,
			want:      map[string]Status{"s1": StatusAvailable, "s2": StatusLocked, "s3": StatusLocked, "s4": StatusLocked},
		},
		{
			name:      "first completed",
			completed: map[string]bool{"s1": true},
			want:      map[string]Status{"s1": StatusCompleted, "s2": StatusAvailable, "s3": StatusLocked, "s4": StatusLocked},
		},
		{
			name:      "out of order completion",
			completed: map[string]bool{"s3": true},
			want:      map[string]Status{"s1": StatusAvailable, "s2": StatusLocked, "s3": StatusCompleted, "s4": StatusAvailable},
		},
		{
			name:      "unknown ids ignored",
			completed: map[string]bool{"other": true},
			want:      map[string]Status{"s1": StatusAvailable, "s2": StatusLocked, "s3": StatusLocked, "s4": StatusLocked},
		},
		{
			name:      "all completed",
			completed: map[string]bool{"s1": true, "s2": true, "s3": true, "s4": true},
			want:      map[string]Status{"s1": StatusCompleted, "s2": StatusCompleted, "s3": StatusCompleted, "s4": StatusCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(steps, tt.completed)
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("%s = %s, want %s", id, got[id], want)
				}
			}
		})
	}
}

// Completing step i never regresses steps <= i, unlocks i+1, and leaves
// steps beyond i+1 untouched.
func TestResolve_Monotonic(t *testing.T) {
	steps := testSteps("a", "b", "c", "d", "e")
	completed := map[string]bool{}

	for i, st := range steps {
		before := Resolve(steps, completed)
		completed[st.ID] = true
		after := Resolve(steps, completed)

		for j := 0; j <= i; j++ {
			if after[steps[j].ID] < before[steps[j].ID] {
				t.Errorf("completing %q regressed %q: %s -> %s", st.ID, steps[j].ID, before[steps[j].ID], after[steps[j].ID])
			}
		}
		if i+1 < len(steps) && after[steps[i+1].ID] != StatusAvailable {
			t.Errorf("completing %q: next step is %s, want AVAILABLE", st.ID, after[steps[i+1].ID])
		}
		for j := i + 2; j < len(steps); j++ {
			if after[steps[j].ID] != before[steps[j].ID] {
				t.Errorf("completing %q changed %q: %s -> %s", st.ID, steps[j].ID, before[steps[j].ID], after[steps[j].ID])
			}
		}
	}
}

func TestResolvePath_CrossesUnits(t *testing.T) {
	skill := catalog.SkillMaster{
		ID: "sk",
		Units: []catalog.SkillUnit{
			{ID: "u1", Steps: testSteps("s1", "s2")},
			{ID: "u2", Steps: testSteps("s3")},
		},
	}

	path := ResolvePath(skill, map[string]bool{"s1": true, "s2": true})
	if len(path) != 3 {
		t.Fatalf("got %d entries, want 3", len(path))
	}
	if path[2].UnitID != "u2" || path[2].Status != StatusAvailable {
		t.Errorf("s3 = %+v, want u2 AVAILABLE", path[2])
	}
}

func TestSummarize(t *testing.T) {
	steps := testSteps("a", "b", "c")
	sum := Summarize(Resolve(steps, map[string]bool{"a": true}))
	if sum.Total != 3 || sum.Completed != 1 || sum.Available != 1 || sum.Locked != 1 {
		t.Errorf("Summarize = %+v", sum)
	}
}

func TestNextAvailable(t *testing.T) {
	steps := testSteps("a", "b", "c")

	st, ok := NextAvailable(steps, map[string]bool{"a": true})
	if !ok || st.ID != "b" {
		t.Errorf("NextAvailable = %q, %v; want b, true", st.ID, ok)
	}

	if _, ok := NextAvailable(steps, map[string]bool{"a": true, "b": true, "c": true}); ok {
		t.Error("expected no available step when everything is completed")
	}
}

func TestStatus_Display(t *testing.T) {
	tests := []struct {
		s        Status
		label    string
		playable bool
	}{
		{StatusLocked, "Locked", false},
		{StatusAvailable, "Available", true},
		{StatusCompleted, "Completed", true},
	}
	for _, tt := range tests {
		if tt.s.Label() != tt.label {
			t.Errorf("%s.Label() = %q, want %q", tt.s, tt.s.Label(), tt.label)
		}
		if tt.s.Playable() != tt.playable {
			t.Errorf("%s.Playable() = %v, want %v", tt.s, tt.s.Playable(), tt.playable)
		}
		if tt.s.Icon() == "?" {
			t.Errorf("%s has no icon", tt.s)
		}
	}
}
