package middleware

import (
	"strconv"
	"time"

	"studyshare/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 记录请求量和耗时
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.GetGlobalCollector().RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
