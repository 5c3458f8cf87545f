package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cretelab/strengthserve/pkg/metric"
)

// TelemetryMiddleware records one count and one latency sample per request,
// tagged with the matched route and the response status.
func TelemetryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		tags := metric.BuildTag(
			metric.NewTag(metric.TagAPI, route),
			metric.NewTag(metric.TagStatus, strconv.Itoa(c.Writer.Status())),
		)
		metric.Count(metric.RouterRequestTotal, 1, tags)
		metric.Timing(metric.RouterRequestLatency, time.Since(startTime), tags)
	}
}
