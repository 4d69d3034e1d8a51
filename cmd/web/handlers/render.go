package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/middleware"
	"dragons-web/cmd/web/session"
)

const (
	flashCookieName = "dragons_flash"
	flashMaxAge     = 60

	msgNetwork       = backendclient.MsgNetwork
	msgUnknownShort  = "알 수 없는 오류"
	msgGenericFailed = "오류가 발생했습니다."
)

var koreanPrinter = message.NewPrinter(language.Korean)

// formatWon 은 9900 을 "9,900" 처럼 천 단위로 끊는다.
func formatWon(n int64) string {
	return koreanPrinter.Sprintf("%d", n)
}

// setFlash 는 다음 화면에서 한 번만 보여줄 알림을 쿠키에 담는다.
func setFlash(c *gin.Context, msg string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash 는 알림을 읽고 바로 지운다.
func popFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return ""
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1})
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}

// render 는 백엔드 쿠키와 플래시를 처리한 뒤 템플릿을 그린다.
// 모든 화면은 Session, Flash 를 공통으로 받는다.
func render(c *gin.Context, status int, name string, data gin.H) {
	middleware.RelayBackendCookies(c)
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = session.FromContext(c)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = popFlash(c)
	}
	c.HTML(status, name, data)
}

// redirect 는 백엔드 쿠키를 옮긴 뒤 302 로 보낸다.
func redirect(c *gin.Context, location string) {
	middleware.RelayBackendCookies(c)
	c.Redirect(http.StatusFound, location)
}

// redirectWithFlash 는 알림을 남기고 이동한다.
func redirectWithFlash(c *gin.Context, location, msg string) {
	setFlash(c, msg)
	redirect(c, location)
}

func requestFields(c *gin.Context, extra logger.Fields) logger.Fields {
	fields := logger.Fields{
		"request_id": c.Request.Header.Get("X-Request-Id"),
		"span_id":    c.Request.Header.Get("X-Span-Id"),
		"path":       c.Request.URL.Path,
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// mutationMessage 는 글 수정/삭제 실패를 화면 문구로 바꾼다.
//   - 전송 실패: 네트워크 오류
//   - 2xx 인데 result 가 SUCCESS 가 아님: "{failPrefix}{message}"
//   - 그 외 상태 코드: "{statusPrefix}{status}"
func mutationMessage(err error, failPrefix, statusPrefix string) string {
	var apiErr *backendclient.APIError
	if !errors.As(err, &apiErr) {
		return failPrefix + msgUnknownShort
	}
	if apiErr.IsNetwork() {
		return msgNetwork
	}
	if apiErr.Status >= 200 && apiErr.Status < 300 {
		msg := apiErr.Message
		if msg == "" {
			msg = msgUnknownShort
		}
		return failPrefix + msg
	}
	return statusPrefix + strconv.Itoa(apiErr.Status)
}

// parseID 는 경로의 :id 를 양의 정수로 읽는다.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
