// Package middleware holds the HTTP middlewares placed in front of the
// identification endpoint.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"fishlog-identify/internal/common/errors"
	"fishlog-identify/internal/common/logger"
	"fishlog-identify/internal/common/metrics"
)

// RejectFunc writes the response for a rejected request.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// RateLimiter is a fixed-window counter per client address kept in Redis.
// Redis failures let the request through.
type RateLimiter struct {
	client  redis.Cmdable
	limit   int64
	window  time.Duration
	prefix  string
	proxies TrustedProxies
	logger  logger.Logger
}

func NewRateLimiter(client redis.Cmdable, limit int, window time.Duration, prefix string, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: prefix,
		logger: log,
	}
}

// WithTrustedProxies lets requests relayed by proxies be keyed on the
// forwarded client address. See ClientAddress.
func (rl *RateLimiter) WithTrustedProxies(proxies TrustedProxies) *RateLimiter {
	rl.proxies = proxies
	return rl
}

// Allow counts one hit for key. When the quota is spent it returns false
// and the time left in the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := rl.prefix + key

	count, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return true, 0, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		if err := rl.client.PExpire(ctx, k, rl.window).Err(); err != nil {
			return true, 0, fmt.Errorf("pexpire %s: %w", k, err)
		}
	}
	if count <= rl.limit {
		return true, 0, nil
	}

	ttl, err := rl.client.PTTL(ctx, k).Result()
	if err != nil {
		return false, rl.window, nil
	}
	if ttl < 0 {
		// A failed PEXPIRE on the first hit left the counter without a
		// window; give it one so the client is not blocked forever.
		if err := rl.client.PExpire(ctx, k, rl.window).Err(); err != nil {
			return false, rl.window, fmt.Errorf("pexpire %s: %w", k, err)
		}
		ttl = rl.window
	}
	return false, ttl, nil
}

// Middleware rejects over-quota requests through reject.
func (rl *RateLimiter) Middleware(reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter, err := rl.Allow(r.Context(), ClientAddress(r, rl.proxies))
			if err != nil {
				rl.logger.Warn("Rate limiter degraded", map[string]interface{}{
					"error":     err.Error(),
					"allowed":   allowed,
					"requestId": RequestIDFromContext(r.Context()),
				})
			}
			if !allowed {
				metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Round(time.Second).Seconds())))
				reject(w, r, errors.NewRateLimitedError(retryAfter))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
