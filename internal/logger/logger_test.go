package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "skillpath.log")

	log, err := New("dev", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("component", "test").Info("hello", "step_id", "s1")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "s1") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestNew_ProdIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prod.log")

	log, err := New("prod", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("ready", "skill_id", "sk")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Errorf("expected JSON line, got %q", data)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := NewNop()
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger")
	}
	// A no-op logger must accept calls without panicking.
	l.Debug("x")
	l.Warn("y", "k", 1)
	l.Error("z")
}
