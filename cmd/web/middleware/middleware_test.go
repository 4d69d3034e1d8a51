package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/clients/backendclient/backendtest"
	"dragons-web/cmd/web/httpclient"
	"dragons-web/cmd/web/services"
	"dragons-web/cmd/web/session"
	"dragons-web/cmd/web/trace"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", ok)
	r.GET("/pricing", ok)
	r.GET("/posts/:id", ok)
	return r
}

func TestRootGuard(t *testing.T) {
	testCases := []struct {
		name         string
		path         string
		cookie       *http.Cookie
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "root without cookie redirects",
			path:         "/",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "root with cookie passes even if invalid",
			path:       "/",
			cookie:     &http.Cookie{Name: "JSESSIONID", Value: "garbage"},
			wantStatus: http.StatusOK,
		},
		{
			name:         "other cookie does not count",
			path:         "/",
			cookie:       &http.Cookie{Name: "OTHER", Value: "x"},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "other paths are allowed",
			path:       "/pricing",
			wantStatus: http.StatusOK,
		},
		{
			name:       "nested paths are allowed",
			path:       "/posts/1",
			wantStatus: http.StatusOK,
		},
	}

	r := newEngine(RootGuard("JSESSIONID", "/login"))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestRequestTraceSetsHeaders(t *testing.T) {
	var seenID string
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTrace())
	r.GET("/x", func(c *gin.Context) {
		seenID = trace.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "incoming-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "incoming-id", seenID)
	assert.Equal(t, "incoming-id", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "0", rec.Header().Get("X-Span-Id"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, rec.Header().Get("X-Request-Id"), 32)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "<script>")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get("X-Request-Id"), 32)
	assert.NotEqual(t, "<script>", seenID)
}

func TestSessionMiddlewares(t *testing.T) {
	fake := backendtest.New()
	defer fake.Close()
	sid := fake.AddUser("kim", "kim@example.com", "pw")
	authSvc := services.NewAuthService(backendclient.New(fake.URL, httpclient.Config{}))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BackendSession(), LoadSession(authSvc, backendtest.SessionCookie))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, session.FromContext(c).Name())
	})
	r.GET("/private", RequireLogin("/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})

	t.Run("no cookie means anonymous without backend call", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, "", rec.Body.String())
		assert.Zero(t, fake.Calls("GET /api/auth/my"))
	})

	t.Run("valid cookie resolves user once", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.AddCookie(&http.Cookie{Name: backendtest.SessionCookie, Value: sid})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "kim", rec.Body.String())
		assert.Equal(t, 1, fake.Calls("GET /api/auth/my"))
	})

	t.Run("private redirects anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: backendtest.SessionCookie, Value: "expired"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("private allows logged in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: backendtest.SessionCookie, Value: sid})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "secret", rec.Body.String())
	})
}

func TestRelayBackendCookies(t *testing.T) {
	fake := backendtest.New()
	defer fake.Close()
	fake.AddUser("kim", "kim@example.com", "pw")
	client := backendclient.New(fake.URL, httpclient.Config{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BackendSession())
	r.POST("/login", func(c *gin.Context) {
		_, err := client.Login(c.Request.Context(), "kim@example.com", "pw")
		require.NoError(t, err)
		RelayBackendCookies(c)
		c.Redirect(http.StatusFound, "/")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	res := rec.Result()
	defer res.Body.Close()
	var found bool
	for _, ck := range res.Cookies() {
		if ck.Name == backendtest.SessionCookie && ck.Value != "" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allowed origin preflight", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"http://app.example"}))
		r.POST("/api/posts", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
		req.Header.Set("Origin", "http://app.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("empty list adds nothing", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS(nil))
		r.GET("/api/posts", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
