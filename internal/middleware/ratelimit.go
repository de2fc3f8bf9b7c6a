package middleware

import (
	"net/http"
	"sync"
	"time"

	"hipis/internal/config"
)

// RateLimiter is a fixed-window per-IP limiter used on the auth endpoints.
type RateLimiter struct {
	enabled  bool
	requests int
	duration time.Duration

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		enabled:  cfg.Enabled,
		requests: cfg.Requests,
		duration: cfg.Duration,
		windows:  make(map[string]*window),
	}
	if rl.enabled {
		go rl.cleanup()
	}
	return rl
}

// Limit rejects callers that exceed the configured request count within the
// current window with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.enabled {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.allow(clientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	win, ok := rl.windows[ip]
	if !ok || now.Sub(win.start) >= rl.duration {
		rl.windows[ip] = &window{start: now, count: 1}
		return true
	}
	if win.count >= rl.requests {
		return false
	}
	win.count++
	return true
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, win := range rl.windows {
			if now.Sub(win.start) >= rl.duration {
				delete(rl.windows, ip)
			}
		}
		rl.mu.Unlock()
	}
}
