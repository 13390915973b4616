package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestConcurrencyCap_AcquireUpToLimit(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	ok, err := AcquireConcurrencyCap(ctx, rdb, "calls:active:u1", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = AcquireConcurrencyCap(ctx, rdb, "calls:active:u1", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = AcquireConcurrencyCap(ctx, rdb, "calls:active:u1", 2, time.Minute)
	require.NoError(t, err)
	require.False(t, ok, "third slot must be rejected")
}

func TestConcurrencyCap_ReleaseFreesSlot(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	ok, err := AcquireConcurrencyCap(ctx, rdb, "k", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ReleaseConcurrencyCap(ctx, rdb, "k"))

	ok, err = AcquireConcurrencyCap(ctx, rdb, "k", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConcurrencyCap_RejectsBadArgs(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	_, err := AcquireConcurrencyCap(ctx, rdb, "", 1, time.Minute)
	require.Error(t, err)
	_, err = AcquireConcurrencyCap(ctx, rdb, "k", 0, time.Minute)
	require.Error(t, err)
	_, err = AcquireConcurrencyCap(ctx, rdb, "k", 1, 0)
	require.Error(t, err)
	require.Error(t, ReleaseConcurrencyCap(ctx, rdb, ""))
}
