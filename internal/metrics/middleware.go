package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// scrapePath is excluded from request metrics so scrapes do not count themselves.
const scrapePath = "/metrics"

// HTTPMetrics is Gin middleware that records request count and latency
// by method, route pattern and status code.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath() // route pattern, not the raw path, keeps label cardinality bounded
		if route == scrapePath {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
