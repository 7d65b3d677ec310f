package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/firmdex/firmdex-api/pkg/metrics"
)

// Metrics records a counter and latency histogram per handled request. Routes
// are labelled by their template (":id" rather than the raw value) to keep
// cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
