package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/workoutlog/internal/logging"
)

// RateLimiter is a fixed window counter kept in Redis.
type RateLimiter struct {
	redis      *redis.Client
	limit      int64
	window     time.Duration
	prefix     string
	keyFunc    func(*http.Request) string
	failClosed bool
}

// NewRateLimiter builds a limiter allowing limit requests per window for each
// key returned by keyFunc. With a nil client every request passes. When
// Redis errors, failClosed decides between 503 and letting the request in.
func NewRateLimiter(redisClient *redis.Client, limit int64, window time.Duration, prefix string, keyFunc func(*http.Request) string, failClosed bool) *RateLimiter {
	if keyFunc == nil {
		keyFunc = GetClientIP
	}
	return &RateLimiter{
		redis:      redisClient,
		limit:      limit,
		window:     window,
		prefix:     prefix,
		keyFunc:    keyFunc,
		failClosed: failClosed,
	}
}

// NewAuthRateLimiter limits login and registration attempts per client IP.
func NewAuthRateLimiter(redisClient *redis.Client, perMinute int64) *RateLimiter {
	return NewRateLimiter(redisClient, perMinute, time.Minute, "ratelimit:auth:", GetClientIP, false)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.redis == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, resetTime, err := rl.isAllowed(r.Context(), rl.keyFunc(r))
		if err != nil {
			logging.FromContext(r.Context()).Warn("Rate limiter unavailable", logging.Fields{"error": err.Error()})
			if rl.failClosed {
				writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime, 10))

		if !allowed {
			retryAfter := resetTime - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) isAllowed(ctx context.Context, key string) (allowed bool, remaining int64, resetTime int64, err error) {
	windowStart := time.Now().Truncate(rl.window)
	windowEnd := windowStart.Add(rl.window)
	redisKey := fmt.Sprintf("%s%s:%d", rl.prefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.ExpireAt(ctx, redisKey, windowEnd)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, windowEnd.Unix(), err
	}

	count := incrCmd.Val()
	remaining = rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.limit, remaining, windowEnd.Unix(), nil
}

// GetClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// the connection's remote address.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if host, _, err := net.SplitHostPort(first); err == nil {
			return host
		}
		return first
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
