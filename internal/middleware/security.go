package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/AnshRaj112/captionly-backend/pkg/clientip"
	"golang.org/x/time/rate"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerXXSSProtection          = "X-XSS-Protection"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerXXSSProtection, "1; mode=block")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'none'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

const (
	globalRateLimitRPS   = 2
	globalRateLimitBurst = 20
	limiterSweepInterval = 5 * time.Minute
	limiterIdleTTL       = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// IPLimiter is an in-process token bucket per client IP. Idle buckets are
// swept during lookups, so no background goroutine is needed.
type IPLimiter struct {
	mu             sync.Mutex
	entries        map[string]*limiterEntry
	limit          rate.Limit
	burst          int
	trustForwarded bool
	lastSweep      time.Time
	now            func() time.Time
}

func NewIPLimiter(limit rate.Limit, burst int, trustForwarded bool) *IPLimiter {
	return &IPLimiter{
		entries:        make(map[string]*limiterEntry),
		limit:          limit,
		burst:          burst,
		trustForwarded: trustForwarded,
		lastSweep:      time.Now(),
		now:            time.Now,
	}
}

func (l *IPLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterSweepInterval {
		for k, e := range l.entries {
			if now.Sub(e.lastUse) > limiterIdleTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastUse = now
	return e.limiter
}

// Middleware rejects requests with 429 once the caller's bucket is empty.
func (l *IPLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r, l.trustForwarded)
		if !l.get(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests. Please slow down."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns middlewares for production: SecurityHeaders → per-IP rate limit.
func ProductionSecurity(trustForwarded bool) []func(http.Handler) http.Handler {
	limiter := NewIPLimiter(rate.Limit(globalRateLimitRPS), globalRateLimitBurst, trustForwarded)
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		limiter.Middleware,
	}
}
