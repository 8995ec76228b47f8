package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/storefront/storefront-backend/utils"
)

const (
	rateLimitKeyPrefix = "rate_limit"
	maxLocalLimiters   = 10_000
)

type counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimiter allows maxRequests per window and per client ip. Counters live in the
// shared cache as fixed windows. While the cache errors, each instance falls back to
// in-process token buckets of the same rate, the least recently seen clients being
// evicted first.
type RateLimiter struct {
	counter     counter
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
}

func NewRateLimiter(counter counter, maxRequests int, window time.Duration) *RateLimiter {
	return newRateLimiter(counter, maxRequests, window, maxLocalLimiters)
}

func newRateLimiter(counter counter, maxRequests int, window time.Duration, localCapacity int) *RateLimiter {
	limiters, err := lru.New[string, *rate.Limiter](localCapacity)
	if err != nil {
		panic(err)
	}
	return &RateLimiter{
		counter:     counter,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		limiters:    limiters,
	}
}

func (rl *RateLimiter) Handler(c *gin.Context) {
	if rl.maxRequests <= 0 || rl.window <= 0 {
		c.Next()
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	allowed, err := rl.allowShared(ctx, ip)
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "rate limit counter unavailable, using local limiter",
			"error", err.Error())
		allowed = rl.localLimiter(ip).Allow()
	}
	if !allowed {
		utils.MetricRateLimited.Inc()
		c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"message": fmt.Sprintf("Rate limit exceeded: %d requests per %s", rl.maxRequests, rl.window),
		})
		return
	}
	c.Next()
}

func (rl *RateLimiter) allowShared(ctx context.Context, ip string) (bool, error) {
	windowIndex := rl.now().UnixNano() / int64(rl.window)
	key := fmt.Sprintf("%s:%s:%d", rateLimitKeyPrefix, ip, windowIndex)

	count, err := rl.counter.Incr(ctx, key, rl.window)
	if err != nil {
		return false, err
	}
	return count <= int64(rl.maxRequests), nil
}

func (rl *RateLimiter) localLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(ip)
	if !ok {
		every := rl.window / time.Duration(rl.maxRequests)
		limiter = rate.NewLimiter(rate.Every(every), rl.maxRequests)
		rl.limiters.Add(ip, limiter)
	}
	return limiter
}
