package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/web/metrics"
)

// RequestMetrics 는 라우트 템플릿과 상태 코드별 요청 수를 센다.
// 매칭되지 않은 경로는 "unmatched" 로 묶는다.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.PageRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
