// Package session 은 inbound 요청 하나 동안의 로그인 사용자 정보를 담는다.
// 화면 핸들러는 각자 /api/auth/my 를 부르지 않고 여기서 읽는다.
package session

import (
	"github.com/gin-gonic/gin"

	"dragons-web/cmd/web/dto"
)

const ginKey = "web_session"

type Session struct {
	User *dto.User
}

func Anonymous() *Session { return &Session{} }

func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// Name 은 구독 조회에 쓰는 사용자 이름이다. 비로그인이면 빈 값이다.
func (s *Session) Name() string {
	if !s.Authenticated() {
		return ""
	}
	return s.User.Name
}

func (s *Session) Email() string {
	if !s.Authenticated() {
		return ""
	}
	return s.User.Email
}

func Set(c *gin.Context, s *Session) {
	c.Set(ginKey, s)
}

// FromContext 는 미들웨어가 저장한 세션을 반환한다. 없으면 비로그인 세션이다.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(ginKey); ok {
		if s, ok := v.(*Session); ok && s != nil {
			return s
		}
	}
	return Anonymous()
}
