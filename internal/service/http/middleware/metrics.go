package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/vector-hub/internal/modules/metrics"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RequestCount.WithLabelValues(path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
