package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragons-web/cmd/web/clients/backendclient"
)

func TestFormatWon(t *testing.T) {
	assert.Equal(t, "9,900", formatWon(9900))
	assert.Equal(t, "1,000,000", formatWon(1000000))
	assert.Equal(t, "500", formatWon(500))
}

func TestReceiptAmount(t *testing.T) {
	assert.Equal(t, "9,900", receiptAmount("9900"))
	assert.Equal(t, "abc", receiptAmount("abc"))
	assert.Equal(t, "", receiptAmount(""))
}

func TestMutationMessage(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "network", err: &backendclient.APIError{Message: backendclient.MsgNetwork, Err: errors.New("dial")}, want: "네트워크 오류가 발생했습니다."},
		{name: "2xx with message", err: &backendclient.APIError{Message: "권한 없음", Status: http.StatusOK}, want: "수정 실패: 권한 없음"},
		{name: "2xx without message", err: &backendclient.APIError{Status: http.StatusOK}, want: "수정 실패: 알 수 없는 오류"},
		{name: "non 2xx", err: &backendclient.APIError{Message: "forbidden", Status: http.StatusForbidden}, want: "수정 요청 실패 status: 403"},
		{name: "not an api error", err: errors.New("boom"), want: "수정 실패: 알 수 없는 오류"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mutationMessage(tc.err, prefixUpdateFailed, prefixUpdateStatus))
		})
	}
}

func TestFlashIsShownOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	setFlash(c, "삭제되었습니다.")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flashCookieName, cookies[0].Name)
	assert.Equal(t, flashMaxAge, cookies[0].MaxAge)

	rec2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(rec2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookies[0])

	assert.Equal(t, "삭제되었습니다.", popFlash(c2))
	expired := rec2.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Less(t, expired[0].MaxAge, 0)

	rec3 := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(rec3)
	c3.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, popFlash(c3))
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testCases := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{raw: "7", want: 7, wantOK: true},
		{raw: "0"},
		{raw: "-1"},
		{raw: "abc"},
	}
	for _, tc := range testCases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}
		id, ok := parseID(c)
		assert.Equal(t, tc.wantOK, ok, tc.raw)
		assert.Equal(t, tc.want, id, tc.raw)
	}
}

func TestPublicBase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "http://web.local:8080/payment/toss", nil)

	assert.Equal(t, "https://dragons.example.com", publicBase(c, "https://dragons.example.com"))
	assert.Equal(t, "http://web.local:8080", publicBase(c, ""))

	c.Request.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://web.local:8080", publicBase(c, ""))

	c.Request.Header.Set("X-Forwarded-Proto", "javascript")
	assert.Equal(t, "http://web.local:8080", publicBase(c, ""))
}

func TestRefreshSeconds(t *testing.T) {
	assert.Equal(t, 1, refreshSeconds(0))
	assert.Equal(t, 1, refreshSeconds(300*time.Millisecond))
	assert.Equal(t, 2, refreshSeconds(1500*time.Millisecond))
	assert.Equal(t, 3, refreshSeconds(3*time.Second))
}
