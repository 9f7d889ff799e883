// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
)

// RateLimiter is a fixed-window request counter shared by every API instance
// pointing at the same Redis.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter allows limit requests per client in each window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: int64(limit), window: window}
}

// Allow increments the client's counter for the current window.
//
// The counter key expires with its window, so no cleanup is needed.
func (limiter *RateLimiter) Allow(context stdctx.Context, key string) (bool, error) {
	slot := time.Now().UnixMilli() / limiter.window.Milliseconds()
	bucket := fmt.Sprintf("%s%s:%d", constants.RedisPrefixRateLimit, key, slot)

	var count *redis.IntCmd
	_, err := limiter.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(context, bucket)
		pipe.Expire(context, bucket, limiter.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis: rate limit failed: %w", err)
	}

	return count.Val() <= limiter.limit, nil
}
