package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/skychat/internal/api/dto"
	"github.com/hugh/skychat/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T, rateLimit int) *Router {
	t.Helper()

	router := NewRouter(RouterConfig{
		DB:            testutil.SetupTestDB(t),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimitReqs: rateLimit,
		RateLimitSecs: 60,
	})
	t.Cleanup(router.Close)
	return router
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, 0)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"ready", http.MethodGet, "/ready", http.StatusOK},
		{"schema", http.MethodGet, "/api/v1/flights/search/schema", http.StatusOK},
		{"params_missing", http.MethodGet, "/api/v1/flights/search/params", http.StatusBadRequest},
		{"offers_empty_body", http.MethodPost, "/api/v1/flights/offers/validate", http.StatusUnprocessableEntity},
		{"unknown_route", http.MethodGet, "/api/v1/chats", http.StatusNotFound},
		{"wrong_method", http.MethodDelete, "/api/v1/flights/search/schema", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			testutil.AssertStatus(t, rr, tt.status)
		})
	}
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	router := newTestRouter(t, 0)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, "Not found", resp.Error)
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		req.RemoteAddr = "198.51.100.9:1234"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/flights/search/params", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
