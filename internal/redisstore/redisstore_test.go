package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/progress"
)

func TestNew_RequiresAddr(t *testing.T) {
	_, err := New(context.Background(), Options{Addr: " "}, nil)
	assert.Error(t, err)
}

func TestNew_UnreachableServer(t *testing.T) {
	_, err := New(context.Background(), Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

// liveKV connects to SKILLPATH_TEST_REDIS_ADDR, skipping when unset.
func liveKV(t *testing.T) *KV {
	t.Helper()
	addr := os.Getenv("SKILLPATH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SKILLPATH_TEST_REDIS_ADDR not set")
	}
	kv, err := New(context.Background(), Options{Addr: addr}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestLive_GetMissing(t *testing.T) {
	kv := liveKV(t)

	_, err := kv.Get(context.Background(), "skillpath-test:"+uuid.NewString())
	assert.ErrorIs(t, err, progress.ErrNotFound)
}

func TestLive_ProgressRoundTrip(t *testing.T) {
	kv := liveKV(t)
	ctx := context.Background()
	ns := "skillpath-test-" + uuid.NewString()
	t.Cleanup(func() { kv.rdb.Del(context.Background(), progress.Key(ns, "sk")) })

	ps := progress.NewKVStore(kv, ns, nil)
	_, err := ps.CompleteStep(ctx, "sk", "s1")
	require.NoError(t, err)
	_, err = ps.CompleteStep(ctx, "sk", "s2")
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2"}, ps.Get(ctx, "sk").CompletedStepIDs)
}
