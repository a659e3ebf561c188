package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hugh/skychat/internal/api/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantSize  int
		wantLevel string
	}{
		{
			name: "implicit ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("hello"))
			},
			wantCode:  http.StatusOK,
			wantSize:  5,
			wantLevel: "INFO",
		},
		{
			name: "client error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantCode:  http.StatusBadRequest,
			wantLevel: "INFO",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.WriteHeader(http.StatusOK)
			},
			wantCode:  http.StatusBadGateway,
			wantLevel: "WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := chimw.RequestID(Logging(newTestLogger(&buf))(tt.handler))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/search/schema", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, float64(tt.wantCode), entry["status"])
			assert.Equal(t, float64(tt.wantSize), entry["size"])
			assert.Equal(t, "/api/v1/flights/search/schema", entry["path"])
			assert.NotEmpty(t, entry["request_id"])
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Run("panic becomes 500", func(t *testing.T) {
		var buf bytes.Buffer
		handler := Recovery(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Internal server error", resp.Error)
		assert.Contains(t, buf.String(), "panic recovered")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("no panic passes through", func(t *testing.T) {
		handler := Recovery(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		handler := Recovery(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 10)
	defer rl.Stop()

	clock := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	allowed, remaining, _ := rl.Allow("1.2.3.4")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining, _ = rl.Allow("1.2.3.4")
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _, reset := rl.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, clock.Add(10*time.Second), reset)

	// Other keys have their own window
	allowed, _, _ = rl.Allow("5.6.7.8")
	assert.True(t, allowed)

	clock = clock.Add(11 * time.Second)
	allowed, _, _ = rl.Allow("1.2.3.4")
	assert.True(t, allowed)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(5, 10)
	defer rl.Stop()

	clock := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	rl.Allow("idle")
	clock = clock.Add(15 * time.Second)
	rl.Allow("active")
	clock = clock.Add(10 * time.Second)

	rl.evictIdle()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.clients, "idle")
	assert.Contains(t, rl.clients, "active")
}

func TestRateLimiter_EvictedWindowNotReused(t *testing.T) {
	rl := NewRateLimiter(5, 10)
	defer rl.Stop()

	clock := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	// A window looked up just before the sweep removes it
	stale := rl.client("1.2.3.4")
	rl.evictIdle()

	_, _, _, ok := rl.record(stale)
	assert.False(t, ok)
	assert.Empty(t, stale.timestamps)

	allowed, remaining, _ := rl.Allow("1.2.3.4")
	assert.True(t, allowed)
	assert.Equal(t, 4, remaining)

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	require.Contains(t, rl.clients, "1.2.3.4")
	assert.NotSame(t, stale, rl.clients["1.2.3.4"])
	assert.Len(t, rl.clients["1.2.3.4"].timestamps, 1)
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 60)
	defer rl.Stop()

	handler := rl.Middleware(ClientIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"forwarded_chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "10.0.0.3:80", "203.0.113.7"},
		{"real_ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.3:80", "198.51.100.4"},
		{"remote_with_port", nil, "192.0.2.1:4321", "192.0.2.1"},
		{"remote_ipv6", nil, "[2001:db8::1]:4321", "2001:db8::1"},
		{"remote_without_port", nil, "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIP(req))
		})
	}
}
