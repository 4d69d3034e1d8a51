package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS 는 허용된 origin 에 대해 자격 증명(쿠키)을 포함한 교차 출처 요청을 허용한다.
// 목록이 비어 있으면 같은 출처만 쓰는 것으로 보고 아무 헤더도 붙이지 않는다.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	if len(allowedOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	h := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders:   []string{headerRequestID, headerSpanID},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return func(c *gin.Context) {
		h.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
