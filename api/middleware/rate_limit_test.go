package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/repositories/clock"
)

type brokenCounter struct{}

func (brokenCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

func rateLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Handler)
	router.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func doRequest(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_sharedCounter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(repositories.NewMemoryCache(64, clock.NewMock(now)), 2, time.Minute)
	limiter.now = func() time.Time { return now }
	router := rateLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)

	blocked := doRequest(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))

	// other clients have their own counter
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234").Code)

	// next window
	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
}

func TestRateLimiter_fallsBackToLocalBuckets(t *testing.T) {
	router := rateLimitedRouter(NewRateLimiter(brokenCounter{}, 3, time.Hour))

	for range 3 {
		assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234").Code)
}

func TestRateLimiter_localBucketsEvictColdestClient(t *testing.T) {
	router := rateLimitedRouter(newRateLimiter(brokenCounter{}, 1, time.Hour, 2))

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234").Code)

	// a third client pushes out 10.0.0.2, the least recently seen
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234").Code)
}

func TestRateLimiter_disabled(t *testing.T) {
	router := rateLimitedRouter(NewRateLimiter(brokenCounter{}, 0, time.Minute))

	for range 5 {
		assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
	}
}
