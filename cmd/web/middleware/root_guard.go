package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootGuard 는 세션 쿠키 없이 정확히 "/" 로 들어온 요청을 로그인 화면으로 보낸다.
// 쿠키의 유효성은 보지 않고 다른 경로는 모두 통과시킨다.
func RootGuard(cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path != "/" {
			c.Next()
			return
		}
		if _, err := c.Cookie(cookieName); err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
