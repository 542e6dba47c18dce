package config

import (
	"strings"
	"testing"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, DefaultNamespace)
	}
	if cfg.LogMode != "dev" {
		t.Errorf("LogMode = %q, want dev", cfg.LogMode)
	}
	if cfg.DBPath != "" || cfg.CatalogPath != "" {
		t.Errorf("expected empty paths, got db=%q catalog=%q", cfg.DBPath, cfg.CatalogPath)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"SKILLPATH_DB":         "/tmp/x.db",
		"SKILLPATH_BACKEND":    "REDIS",
		"SKILLPATH_REDIS_ADDR": "localhost:6379",
		"SKILLPATH_REDIS_DB":   "2",
		"SKILLPATH_NAMESPACE":  "learner-7",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendRedis || cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("redis settings not applied: %+v", cfg)
	}
	if cfg.Namespace != "learner-7" || cfg.DBPath != "/tmp/x.db" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"unknown backend", map[string]string{"SKILLPATH_BACKEND": "s3"}, "unknown backend"},
		{"redis without addr", map[string]string{"SKILLPATH_BACKEND": "redis"}, "SKILLPATH_REDIS_ADDR"},
		{"namespace with colon", map[string]string{"SKILLPATH_NAMESPACE": "a:b"}, "must not contain"},
		{"bad redis db", map[string]string{"SKILLPATH_REDIS_DB": "two"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(tt.vars)
			if err == nil {
				err = cfg.Validate()
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestLoadFrom_ValidationDeferredForOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"SKILLPATH_BACKEND": "redis"})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Validate() == nil {
		t.Fatal("expected redis without an address to be invalid")
	}

	cfg.Backend = BackendMemory
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate after override: %v", err)
	}
}
