package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rsinnovation/hub-api/internal/http/respond"
	"golang.org/x/time/rate"
)

// RateLimiter throttles anonymous write endpoints (register, login, contact)
// per client IP. Entries idle past the cleanup TTL are evicted by a
// background loop.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

const cleanupInterval = 5 * time.Minute

// NewRateLimiter creates a limiter allowing perMinute requests per client IP.
func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop halts the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware rejects requests above the per-client rate with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			respond.Error(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	cl, ok := rl.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[client] = cl
	}
	cl.lastAccess = time.Now()
	rl.mu.Unlock()

	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	ttl := cleanupInterval * 2
	now := time.Now()

	rl.mu.Lock()
	for client, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, client)
		}
	}
	rl.mu.Unlock()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
