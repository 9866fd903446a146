package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Metrics 记录请求数、耗时和并发数
// path使用路由模板（/books/:id），避免标签基数随ID增长
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.TrackInProgress()
		defer done()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
