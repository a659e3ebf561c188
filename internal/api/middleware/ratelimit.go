package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hugh/skychat/internal/api/dto"
)

// RateLimiter counts requests per key over a sliding window.
type RateLimiter struct {
	requests int
	window   time.Duration
	clients  map[string]*clientWindow
	mu       sync.RWMutex
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type clientWindow struct {
	timestamps []time.Time
	evicted    bool
	mu         sync.Mutex
}

// NewRateLimiter allows requests per windowSeconds for each key. Non-positive
// values fall back to 100 requests per minute. Call Stop to end the
// background sweep of idle keys.
func NewRateLimiter(requests int, windowSeconds int) *RateLimiter {
	if requests <= 0 {
		requests = 100
	}
	if windowSeconds <= 0 {
		windowSeconds = 60
	}

	rl := &RateLimiter{
		requests: requests,
		window:   time.Duration(windowSeconds) * time.Second,
		clients:  make(map[string]*clientWindow),
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go rl.sweep(time.Minute)

	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

// evictIdle drops keys with no request in the last two windows.
func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.window)
	for key, client := range rl.clients {
		client.mu.Lock()
		n := len(client.timestamps)
		if n == 0 || client.timestamps[n-1].Before(cutoff) {
			delete(rl.clients, key)
			client.evicted = true
		}
		client.mu.Unlock()
	}
}

func (rl *RateLimiter) client(key string) *clientWindow {
	rl.mu.RLock()
	client, ok := rl.clients[key]
	rl.mu.RUnlock()
	if ok {
		return client
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if client, ok = rl.clients[key]; !ok {
		client = &clientWindow{timestamps: make([]time.Time, 0, rl.requests)}
		rl.clients[key] = client
	}
	return client
}

// Allow records a request for key and reports whether it fits in the window,
// how many requests remain, and when the window frees up.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time) {
	for {
		if allowed, remaining, reset, ok := rl.record(rl.client(key)); ok {
			return allowed, remaining, reset
		}
	}
}

// record counts a request against client. ok is false when the window was
// evicted after it was looked up; the caller must fetch a fresh one.
func (rl *RateLimiter) record(client *clientWindow) (allowed bool, remaining int, reset time.Time, ok bool) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.evicted {
		return false, 0, time.Time{}, false
	}

	now := rl.now()
	windowStart := now.Add(-rl.window)

	// timestamps are appended in order, so the live ones are a suffix
	live := sort.Search(len(client.timestamps), func(i int) bool {
		return client.timestamps[i].After(windowStart)
	})
	client.timestamps = client.timestamps[live:]

	if len(client.timestamps) >= rl.requests {
		return false, 0, client.timestamps[0].Add(rl.window), true
	}

	client.timestamps = append(client.timestamps, now)
	return true, rl.requests - len(client.timestamps), now.Add(rl.window), true
}

// Middleware applies the limiter using keyFn to identify the caller.
func (rl *RateLimiter) Middleware(keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, resetTime := rl.Allow(keyFn(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				retry := int64(resetTime.Sub(rl.now()).Seconds()) + 1
				w.Header().Set("Retry-After", strconv.FormatInt(retry, 10))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "Rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP prefers proxy headers and falls back to the connection address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
