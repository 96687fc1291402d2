package user

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter counts failed logins per key.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type nopLimiter struct{}

func (nopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (nopLimiter) Fail(context.Context, string) error          { return nil }
func (nopLimiter) Reset(context.Context, string) error         { return nil }

const loginFailPrefix = "techfest:login:fail:"

// RedisLimiter keeps a counter per key that expires window after the first failure.
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, loginFailPrefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return n < l.maxAttempts, nil
}

func (l *RedisLimiter) Fail(ctx context.Context, key string) error {
	k := loginFailPrefix + key
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	_, err := pipe.Exec(ctx)
	return err
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, loginFailPrefix+key).Err()
}
