package main

import (
	"context"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-mentor/internal/config"
	"voice-mentor/pkg/logger"
)

func redisConfig(t *testing.T, addr string) config.Config {
	t.Helper()
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	var cfg config.Config
	cfg.Redis.Host = host
	cfg.Redis.Port = p
	cfg.Redis.CallConcurrencyLimit = 1
	cfg.Redis.CallSlotTTL = time.Minute
	return cfg
}

func TestNewCallLimiter_RedisDownStartsUncapped(t *testing.T) {
	limiter, closeFn := newCallLimiter(context.Background(), redisConfig(t, "127.0.0.1:1"), logger.NewWithWriter("local", io.Discard))
	defer closeFn()
	assert.Nil(t, limiter)
}

func TestNewCallLimiter_UsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter, closeFn := newCallLimiter(context.Background(), redisConfig(t, mr.Addr()), logger.NewWithWriter("local", io.Discard))
	defer closeFn()
	require.NotNil(t, limiter)

	ok, err := limiter.Acquire(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = limiter.Acquire(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}
