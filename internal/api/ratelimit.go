package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/funzone/internal/errors"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/metrics"
)

// RateLimiter is a fixed-window limiter on Redis INCR/EXPIRE, keyed by client
// IP as rl:<window_seconds>:<ip>. Without a client, or when Redis fails,
// requests are let through.
type RateLimiter struct {
	client  redis.UniversalClient
	limit   int
	window  time.Duration
	metrics *metrics.Metrics
}

func NewRateLimiter(client redis.UniversalClient, limit int, window time.Duration, m *metrics.Metrics) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window, metrics: m}
}

func (l *RateLimiter) key(ident string) string {
	return "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + ident
}

// Allow counts one request for ident and reports whether it is within the
// limit.
func (l *RateLimiter) Allow(ctx context.Context, ident string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}
	key := l.key(ident)
	val, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if val == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return true, err
		}
	}
	return val <= int64(l.limit), nil
}

// Middleware limits the wrapped endpoint.
func (l *RateLimiter) Middleware(endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			ok, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				log.Warn("rate limiter unavailable, allowing request: %v", err)
				w.Header().Set("X-RateLimit-Error", "redis-error")
			}
			if !ok {
				if l.metrics != nil {
					l.metrics.RLBlocked.WithLabelValues(endpoint).Inc()
				}
				handleError(w, r, errors.NewRateLimitedError())
				return
			}
			if l.metrics != nil {
				l.metrics.RLRequests.WithLabelValues(endpoint).Inc()
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr; chi's RealIP middleware has
// already applied X-Forwarded-For.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
