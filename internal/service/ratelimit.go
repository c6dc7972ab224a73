package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTooManyRequests = errors.New("too many requests, please try again later")

// RateLimiter throttles expensive operations per caller using redis
// counters.
type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redis *redis.Client) *RateLimiter {
	return &RateLimiter{
		redis: redis,
	}
}

// CheckAnalysis limits AI analysis calls to 10 per caller per hour.
func (r *RateLimiter) CheckAnalysis(ctx context.Context, caller string) error {
	return r.check(ctx, fmt.Sprintf("analysis_requests:%s", caller), 10, time.Hour)
}

func (r *RateLimiter) check(ctx context.Context, key string, max int64, window time.Duration) error {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("ratelimit: incr %s: %w", key, err)
	}

	if count == 1 {
		r.redis.Expire(ctx, key, window)
	}

	if count > max {
		return ErrTooManyRequests
	}

	return nil
}
