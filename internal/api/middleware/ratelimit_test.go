package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lunchly/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.RateLimitConfig{
		Enabled: true,
		RPS:     0.001,
		Burst:   2,
	}
	limiter := NewRateLimiterMiddleware(ctx, cfg, testLogger)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := limiter.Middleware(nextHandler)

	t.Run("allows requests up to the burst and then blocks", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"

		for i := 0; i < cfg.Burst; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		var response map[string]map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "Rate limit exceeded", response["error"]["message"])
	})

	t.Run("limits each client separately", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.1.1:4000"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("extractIP handles various headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1, 10.0.0.1")
		assert.Equal(t, "192.168.1.1", limiter.extractIP(req))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")
		assert.Equal(t, "10.0.0.1", limiter.extractIP(req))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		assert.Equal(t, "127.0.0.1", limiter.extractIP(req))
	})

	t.Run("disabled limiter passes everything through", func(t *testing.T) {
		off := NewRateLimiterMiddleware(ctx, config.RateLimitConfig{Enabled: false}, testLogger)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			off.Middleware(nextHandler).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestSweepDropsIdleLimiters(t *testing.T) {
	rl := &RateLimiterMiddleware{cfg: config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}, logger: testLogger}

	busy := rl.getLimiter("10.0.0.1")
	require.True(t, busy.Allow())
	rl.getLimiter("10.0.0.2")

	rl.sweep()

	_, busyKept := rl.limiters.Load("10.0.0.1")
	_, idleKept := rl.limiters.Load("10.0.0.2")
	assert.True(t, busyKept)
	assert.False(t, idleKept)
}
