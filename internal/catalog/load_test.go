package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalCatalog = `{
  "version": "v1.0.0",
  "skills": [{
    "id": "sk-min",
    "domain": "tech",
    "title": "Minimal",
    "category": "Technical",
    "units": [{
      "id": "u1",
      "title": "Only unit",
      "steps": [{"id": "st1", "title": "Only step", "type": "LESSON", "slides": [], "questions": [], "xpReward": 5}]
    }]
  }]
}`

func TestLoadSeed(t *testing.T) {
	idx, err := LoadSeed()
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if idx.Len() != 2 {
		t.Errorf("got %d skills, want 2", idx.Len())
	}
}

func TestLoad_Minimal(t *testing.T) {
	idx, err := Load("minimal", strings.NewReader(minimalCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := idx.Steps("sk-min")
	if len(steps) != 1 || steps[0].ID != "st1" {
		t.Errorf("Steps(sk-min) = %+v", steps)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(minimalCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("got %v, want *LoadError", err)
	}
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"not json", `{"version":`, "invalid JSON"},
		{"missing skills", `{"version": "v1.0.0"}`, "schema validation failed"},
		{"negative xp", strings.Replace(minimalCatalog, `"xpReward": 5`, `"xpReward": -1`, 1), "schema validation failed"},
		{"bad category", strings.Replace(minimalCatalog, `"Technical"`, `"Cooking"`, 1), "schema validation failed"},
		{"bad version", strings.Replace(minimalCatalog, `"v1.0.0"`, `"one"`, 1), "not a semantic version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestParse_FutureMajorVersion(t *testing.T) {
	raw := strings.Replace(minimalCatalog, `"v1.0.0"`, `"v2.0.0"`, 1)
	_, err := Parse([]byte(raw))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("got %v, want ErrUnsupportedVersion", err)
	}
}

func TestLoad_SemanticValidationAfterSchema(t *testing.T) {
	// Schema-valid, but the correct answer is not among the options.
	raw := `{
  "version": "v1.0.0",
  "skills": [{
    "id": "sk", "domain": "tech", "title": "T", "category": "Technical",
    "units": [{"id": "u", "title": "U", "steps": [{
      "id": "s", "title": "S", "type": "QUIZ", "xpReward": 1,
      "questions": [{"id": "q", "type": "MULTIPLE_CHOICE", "question": "?", "options": ["a", "b"], "correctAnswer": "c"}]
    }]}]
  }]
}`
	_, err := Load("bad", strings.NewReader(raw))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "not one of the options") {
		t.Errorf("unexpected error: %v", err)
	}
}
