// Package redisstore keeps progress records in Redis so several devices can
// share one learner's path.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
)

// Options configures the Redis connection.
type Options struct {
	Addr        string
	DB          int
	DialTimeout time.Duration
}

// KV implements progress.KV on Redis string values.
type KV struct {
	rdb goredis.UniversalClient
	log *logger.Logger
}

var _ progress.KV = (*KV)(nil)

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, opts Options, log *logger.Logger) (*KV, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          opts.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewWithClient(rdb, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb goredis.UniversalClient, log *logger.Logger) *KV {
	return &KV{
		rdb: rdb,
		log: logger.OrNop(log).With("service", "RedisProgressKV"),
	}
}

// Get returns the value under key, or progress.ErrNotFound.
func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := k.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, progress.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Put stores value under key without expiry.
func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	if err := k.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	k.log.Debug("progress written", "key", key, "bytes", len(value))
	return nil
}

// Close releases the connection pool.
func (k *KV) Close() error {
	return k.rdb.Close()
}
