// Rate limiter for the placement-ranking endpoint, which walks the whole
// frontier per request. Fixed-window counter per client IP.
package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter tracks request counts per IP within a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	maxRate int
	span    time.Duration
}

type window struct {
	remaining int
	openedAt  time.Time
}

// NewRateLimiter allows maxRate requests per span per IP.
func NewRateLimiter(maxRate int, span time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		maxRate: maxRate,
		span:    span,
	}
}

// Allow consumes one request slot for ip. The second return is the retry
// delay in seconds when denied.
func (rl *RateLimiter) Allow(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[ip]
	if !ok || now.Sub(w.openedAt) >= rl.span {
		rl.windows[ip] = &window{remaining: rl.maxRate - 1, openedAt: now}
		rl.sweep(now)
		return true, 0
	}
	if w.remaining > 0 {
		w.remaining--
		return true, 0
	}
	return false, int((rl.span - now.Sub(w.openedAt)).Seconds()) + 1
}

// sweep drops expired windows. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, w := range rl.windows {
		if now.Sub(w.openedAt) >= 2*rl.span {
			delete(rl.windows, ip)
		}
	}
}

// RateLimitMiddleware wraps a handler, answering 429 when the client's
// window is exhausted.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		ok, retry := rl.Allow(ip)
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
