package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/web/httpclient"
	"dragons-web/cmd/web/services"
	"dragons-web/cmd/web/session"
)

// BackendSession 은 브라우저 쿠키를 백엔드 호출에 싣기 위한 httpclient.Session 을 컨텍스트에 둔다.
func BackendSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := httpclient.NewSession(c.Request.Cookies())
		c.Request = c.Request.WithContext(httpclient.WithSession(c.Request.Context(), s))
		c.Next()
	}
}

// RelayBackendCookies 는 백엔드가 내려준 Set-Cookie 를 응답에 옮긴다.
// 본문을 쓰기 전에 호출해야 한다.
func RelayBackendCookies(c *gin.Context) {
	s := httpclient.SessionFromContext(c.Request.Context())
	if s == nil {
		return
	}
	for _, ck := range s.TakeReceived() {
		http.SetCookie(c.Writer, ck)
	}
}

// LoadSession 은 요청마다 현재 사용자를 한 번 조회해 session.Session 으로 저장한다.
// 세션 쿠키가 없으면 백엔드를 부르지 않는다.
func LoadSession(authSvc *services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := c.Cookie(cookieName); err != nil {
			session.Set(c, session.Anonymous())
			c.Next()
			return
		}
		session.Set(c, authSvc.Resolve(c.Request.Context()))
		c.Next()
	}
}

// RequireLogin 은 비로그인 세션을 로그인 화면으로 보낸다.
func RequireLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.FromContext(c).Authenticated() {
			RelayBackendCookies(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
