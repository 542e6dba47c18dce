package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/event"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/redisstore"
	"github.com/abhisek/skillpath/internal/rewards"
	"github.com/abhisek/skillpath/internal/store"
)

// services bundles everything a command runs against.
type services struct {
	cfg      config.Config
	log      *logger.Logger
	catalog  *catalog.Index
	progress progress.Store
	rewards  *rewards.Service
	bus      *event.Bus

	closers []func() error
}

// Close releases backends in reverse order of opening.
func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Warn("close failed", "error", err)
		}
	}
	s.log.Sync()
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = config.Backend(strings.ToLower(b))
	}
	if c, _ := cmd.Flags().GetString("catalog"); c != "" {
		cfg.CatalogPath = c
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path from config (flag or env),
// then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveLogPath places the log next to the database unless configured.
func resolveLogPath(cfg config.Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skillpath.log"), nil
}

func loadCatalog(cfg config.Config) (*catalog.Index, error) {
	if cfg.CatalogPath == "" {
		return catalog.LoadSeed()
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

// openServices builds the catalog, progress backend, event bus and reward
// ledger for the configured backend. The reward ledger lives in SQLite for
// the sqlite and redis backends and in memory for the memory backend.
func openServices(cmd *cobra.Command) (*services, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logPath, err := resolveLogPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	log, err := logger.New(cfg.LogMode, logPath)
	if err != nil {
		return nil, err
	}
	svc := &services{cfg: cfg, log: log}

	idx, err := loadCatalog(cfg)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	svc.catalog = idx

	var kv progress.KV
	var ledger store.EventRepo
	if cfg.Backend != config.BackendMemory {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			svc.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			svc.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		svc.closers = append(svc.closers, st.Close)
		kv = st.ProgressKV()
		ledger = st.EventRepo()
	}

	switch cfg.Backend {
	case config.BackendRedis:
		rkv, err := redisstore.New(ctx, redisstore.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB}, log)
		if err != nil {
			svc.Close()
			return nil, fmt.Errorf("open redis: %w", err)
		}
		svc.closers = append(svc.closers, rkv.Close)
		kv = rkv
	case config.BackendMemory:
		kv = progress.NewMemoryKV()
	}

	svc.progress = progress.NewKVStore(kv, cfg.Namespace, log)
	svc.bus = event.NewBus(log)
	svc.rewards = rewards.NewService(ledger, log)
	svc.rewards.Attach(svc.bus)

	log.Info("services ready", "backend", cfg.Backend, "skills", idx.Len())
	return svc, nil
}
