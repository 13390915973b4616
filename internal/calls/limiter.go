package calls

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"voice-mentor/pkg/utils"
)

// Limiter caps how many calls a user may have in flight.
type Limiter interface {
	Acquire(ctx context.Context, userID string) (bool, error)
	Release(ctx context.Context, userID string) error
}

// RedisLimiter keeps one counter per user. A slot is taken when a call is placed
// and given back by its status callback; the TTL frees slots whose callback never arrives.
type RedisLimiter struct {
	rdb   redis.Scripter
	limit int
	ttl   time.Duration
}

func NewRedisLimiter(rdb redis.Scripter, limit int, ttl time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, ttl: ttl}
}

func activeCallsKey(userID string) string { return "mentor:active_calls:" + userID }

func (l *RedisLimiter) Acquire(ctx context.Context, userID string) (bool, error) {
	return utils.AcquireConcurrencyCap(ctx, l.rdb, activeCallsKey(userID), l.limit, l.ttl)
}

func (l *RedisLimiter) Release(ctx context.Context, userID string) error {
	return utils.ReleaseConcurrencyCap(ctx, l.rdb, activeCallsKey(userID))
}
