package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/captionly-backend/internal/logging"
	"github.com/AnshRaj112/captionly-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyPrefix is the Redis key prefix for rate limiting
const RateLimitKeyPrefix = "ratelimit:"

// RedisRateLimiter counts requests per client IP in fixed Redis windows.
// It is shared across instances, unlike IPLimiter. Redis failures let the
// request through.
type RedisRateLimiter struct {
	client         *redis.Client
	name           string
	limit          int
	window         time.Duration
	trustForwarded bool
	log            logging.Logger
}

func NewRedisRateLimiter(client *redis.Client, name string, limit int, window time.Duration, trustForwarded bool, log logging.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:         client,
		name:           name,
		limit:          limit,
		window:         window,
		trustForwarded: trustForwarded,
		log:            log,
	}
}

func (l *RedisRateLimiter) key(ip string) string {
	return RateLimitKeyPrefix + l.name + ":" + ip
}

// hit records one request and returns the count in the current window and
// the time left until the window resets.
func (l *RedisRateLimiter) hit(ctx context.Context, ip string) (int64, time.Duration, error) {
	key := l.key(ip)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return 0, 0, err
		}
		return count, l.window, nil
	}
	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if ttl < 0 {
		// key lost its expiry; re-arm it so the caller is not locked out forever
		l.client.Expire(ctx, key, l.window)
		ttl = l.window
	}
	return count, ttl, nil
}

func (l *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r, l.trustForwarded)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		count, ttl, err := l.hit(ctx, ip)
		cancel()
		if err != nil {
			l.log.Warn(r.Context(), "rate limiter unavailable, allowing request",
				"limiter", l.name,
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		remaining := int64(l.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(l.limit) {
			w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(fmt.Sprintf(`{"error":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(ttl.Seconds()))))
			return
		}

		next.ServeHTTP(w, r)
	})
}
