package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/middleware"
	"dragons-web/cmd/web/paymentflow"
	"dragons-web/cmd/web/services"
	"dragons-web/cmd/web/validation"
)

const (
	msgLoginFallback     = "로그인에 실패했습니다."
	msgRegisteredNotice  = "회원가입이 완료되었습니다. 로그인해주세요."
	msgGoogleURLFallback = "Google 로그인 주소를 가져오지 못했습니다."
)

// LoginPageHandler 는 로그인 화면이다. ?registered=true 면 가입 완료 안내를 보여준다.
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{}
		if c.Query("registered") == "true" {
			data["Notice"] = msgRegisteredNotice
		}
		render(c, http.StatusOK, "login.tmpl", data)
	}
}

// LoginHandler 는 이메일 로그인 후 백엔드 세션 쿠키를 그대로 내려주고 홈으로 보낸다.
func LoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := validation.LoginForm{
			Email:    validation.Text(c.PostForm("email")),
			Password: c.PostForm("password"),
		}
		if _, err := authSvc.Login(c.Request.Context(), form); err != nil {
			msg := validation.Message(err, backendclient.Message(err, msgLoginFallback))
			logger.WarnWithFields("login failed", requestFields(c, logger.Fields{"error": err.Error()}))
			render(c, http.StatusOK, "login.tmpl", gin.H{"Error": msg, "Email": form.Email})
			return
		}
		redirect(c, "/")
	}
}

// GoogleLoginHandler 는 백엔드에서 Google 인증 주소를 받아 그쪽으로 보낸다.
func GoogleLoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		loginURL, err := authSvc.GoogleLoginURL(c.Request.Context())
		if err != nil || loginURL == "" {
			fields := logger.Fields{}
			if err != nil {
				fields["error"] = err.Error()
			}
			logger.ErrorWithFields("google login url failed", requestFields(c, fields))
			render(c, http.StatusOK, "login.tmpl", gin.H{"Error": backendclient.Message(err, msgGoogleURLFallback)})
			return
		}
		logger.InfoWithFields("redirect to google oauth", requestFields(c, logger.Fields{"redirect_to": loginURL}))
		redirect(c, loginURL)
	}
}

func RegisterPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "register.tmpl", nil)
	}
}

// RegisterHandler 는 가입 성공 시 /login?registered=true 로 보낸다. 실패는 폼에 그대로 보여준다.
func RegisterHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := validation.RegisterForm{
			Name:     validation.Text(c.PostForm("name")),
			Email:    validation.Text(c.PostForm("email")),
			Password: c.PostForm("password"),
		}
		if _, err := authSvc.Register(c.Request.Context(), form); err != nil {
			msg := validation.Message(err, backendclient.Message(err, services.MsgRegisterFallback))
			logger.WarnWithFields("register failed", requestFields(c, logger.Fields{"error": err.Error()}))
			render(c, http.StatusOK, "register.tmpl", gin.H{"Error": msg, "Name": form.Name, "Email": form.Email})
			return
		}
		redirect(c, "/login?registered=true")
	}
}

// GoogleCallbackHandler 는 OAuth 콜백이다.
// 성공하면 즉시 홈으로, 실패하면 안내 화면을 보여주고 retryDelay 뒤 로그인 화면으로 돌아간다.
func GoogleCallbackHandler(authSvc *services.AuthService, loginPath string, retryDelay time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := authSvc.GoogleCallback(c.Request.Context(), c.Query("code"), loginPath, retryDelay)
		if out.State() == paymentflow.StateSuccess {
			redirect(c, out.RedirectTo)
			return
		}
		data := gin.H{
			"State":     string(out.State()),
			"Message":   out.Message(),
			"LoginPath": loginPath,
		}
		if out.RedirectTo != "" {
			data["Refresh"] = fmt.Sprintf("%d;url=%s", refreshSeconds(out.RedirectAfter), out.RedirectTo)
		}
		render(c, http.StatusOK, "callback.tmpl", data)
	}
}

// refreshSeconds 는 meta refresh 지연(초)이다. 실패 문구를 읽을 수 있도록 최소 1초, 남는 시간은 올림한다.
func refreshSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// LogoutHandler 는 백엔드 로그아웃에 성공하면 세션 쿠키를 지우고 로그인 화면으로 보낸다.
// 실패하면 홈으로 돌아간다.
func LogoutHandler(authSvc *services.AuthService, cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authSvc.Logout(c.Request.Context()); err != nil {
			logger.WarnWithFields("logout failed", requestFields(c, logger.Fields{"error": err.Error()}))
			redirect(c, "/")
			return
		}
		middleware.RelayBackendCookies(c)
		http.SetCookie(c.Writer, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
		c.Redirect(http.StatusFound, loginPath)
	}
}
