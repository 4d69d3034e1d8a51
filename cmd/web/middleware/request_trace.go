package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/trace"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"
)

// RequestTrace는 모든 inbound 요청에 Request ID 와 Span ID 를 보장하고
// 컨텍스트/응답 헤더에 저장한 뒤 완료 로그를 남긴다.
// 폼 본문에는 비밀번호나 카드번호가 있으므로 본문은 기록하지 않는다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := trace.NormalizeRequestID(req.Header.Get(headerRequestID))

		// inbound 로그는 span_id=0, 백엔드 호출은 1,2,3,... 로 증가한다.
		ctxWithTrace := trace.WithRequestAndSpan(req.Context(), requestID, 0)
		c.Request = req.WithContext(ctxWithTrace)

		currentSpan := trace.CurrentSpanID(ctxWithTrace)
		c.Request.Header.Set(headerRequestID, requestID)
		c.Request.Header.Set(headerSpanID, currentSpan)
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Writer.Header().Set(headerSpanID, currentSpan)

		c.Next()

		fields := logger.Fields{
			"method":         req.Method,
			"path":           req.URL.Path,
			"route":          c.FullPath(),
			"status":         c.Writer.Status(),
			"duration":       time.Since(start).String(),
			"request_id":     requestID,
			"span_id":        trace.CurrentSpanID(c.Request.Context()),
			"content_length": req.ContentLength,
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.InfoWithFields("completed request", fields)
	}
}
