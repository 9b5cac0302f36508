package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/id", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses the caller's id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/id", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	env := setupTestEnv(t, func(cfg *RouterConfig) { cfg.RateLimiter = limiter })

	assert.Equal(t, http.StatusOK, env.do("GET", "/ping", "").Code)
	assert.Equal(t, http.StatusOK, env.do("GET", "/ping", "").Code)

	w := env.do("GET", "/ping", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", decodeError(t, w.Body.Bytes()).Code)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	other := httptest.NewRecorder()
	env.router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code, "limits are per client")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	limiter.allow("1.1.1.1")
	limiter.allow("2.2.2.2")

	assert.Zero(t, limiter.Cleanup(time.Hour))

	limiter.mu.Lock()
	limiter.visitors["1.1.1.1"].lastSeen = time.Now().Add(-2 * time.Hour)
	limiter.mu.Unlock()

	assert.Equal(t, 1, limiter.Cleanup(time.Hour))
	assert.Len(t, limiter.visitors, 1)
}
