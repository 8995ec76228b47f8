package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/utils"
)

// NewMetrics records a request counter and a latency histogram per route template,
// so that /products/:product_id stays a single series.
func NewMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		utils.MetricHttpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		utils.MetricHttpLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
