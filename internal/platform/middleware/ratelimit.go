// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// # Rate Limiting

// Limiter decides whether the client identified by key may proceed.
//
// Implementations: [MemoryLimiter] for a single instance, and the redis-backed
// limiter for several instances sharing one budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests with 429 once the client's budget is spent.
//
// A limiter error lets the request through; throttling must never take the
// catalog down with it.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// Identify the client by their IP address
			clientIP := ctxutil.GetClientIP(request.Context())
			if clientIP == "" {
				clientIP = RealIP(request)
			}

			allowed, err := limiter.Allow(request.Context(), clientIP)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "rate_limiter_unavailable",
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				retryAfter := int(constants.RateLimitWindow.Seconds())
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-process token bucket per client.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	rps     rate.Limit
	burst   int
}

// NewMemoryLimiter builds a token-bucket limiter and starts the idle-client
// cleanup loop, which stops when ctx is cancelled.
func NewMemoryLimiter(ctx context.Context, rps float64, burst int) *MemoryLimiter {
	limiter := &MemoryLimiter{
		clients: make(map[string]*rateLimitClient),
		rps:     rate.Limit(rps),
		burst:   burst,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.evictIdle(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

// Allow implements [Limiter]. It never returns an error.
func (limiter *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.clients[key]

	// Initialize a new bucket if this is a fresh client
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.clients[key] = client
	}

	client.lastSeen = time.Now()
	return client.limiter.Allow(), nil
}

func (limiter *MemoryLimiter) evictIdle(now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for key, client := range limiter.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(limiter.clients, key)
		}
	}
}
