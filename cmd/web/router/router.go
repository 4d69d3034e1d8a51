package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/handlers"
	"dragons-web/cmd/web/middleware"
	"dragons-web/cmd/web/services"
	"dragons-web/cmd/web/templates"
	"dragons-web/config"
)

// Deps 는 라우터가 쓰는 서비스 묶음이다. 테스트에서 가짜 백엔드를 가리키는 클라이언트로 만든다.
type Deps struct {
	Client        *backendclient.Client
	Auth          *services.AuthService
	Posts         *services.PostService
	Subscriptions *services.SubscriptionService
	Payments      *services.PaymentService
}

// NewDeps 는 백엔드 클라이언트 하나로 모든 서비스를 만든다.
func NewDeps(client *backendclient.Client, cfg *config.AppConfig) Deps {
	return Deps{
		Client:        client,
		Auth:          services.NewAuthService(client),
		Posts:         services.NewPostService(client),
		Subscriptions: services.NewSubscriptionService(client),
		Payments: services.NewPaymentService(client, services.PaymentConfig{
			Amount:        cfg.Payment.Amount,
			PlanType:      cfg.Payment.PlanType,
			OrderName:     cfg.Payment.OrderName,
			ProductName:   cfg.Payment.ProductName,
			TossClientKey: cfg.Payment.TossClientKey,
			TossSDKURL:    cfg.Payment.TossSDKURL,
		}),
	}
}

func New(cfg *config.AppConfig, deps Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.RequestMetrics())

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := deps.Client.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "backend": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// /api/* 는 백엔드로 그대로 넘긴다.
	proxy, err := newBackendProxy(cfg.Backend.BaseURL)
	if err != nil {
		return nil, err
	}
	api := r.Group("/api", middleware.CORS(cfg.CORS.AllowedOrigins))
	api.Any("/*path", gin.WrapH(proxy))

	cookieName := cfg.Session.CookieName
	loginPath := cfg.Session.LoginPath

	pages := r.Group("/",
		middleware.RootGuard(cookieName, loginPath),
		middleware.BackendSession(),
		middleware.LoadSession(deps.Auth, cookieName),
	)
	{
		pages.GET("/", handlers.HomeHandler(deps.Posts))
		pages.POST("/logout", handlers.LogoutHandler(deps.Auth, cookieName, loginPath))

		pages.GET("/login", handlers.LoginPageHandler())
		pages.POST("/login", handlers.LoginHandler(deps.Auth))
		pages.GET("/auth/google", handlers.GoogleLoginHandler(deps.Auth))
		pages.GET("/auth/callback", handlers.GoogleCallbackHandler(deps.Auth, loginPath, cfg.Auth.CallbackRedirectDelay))
		pages.GET("/register", handlers.RegisterPageHandler())
		pages.POST("/register", handlers.RegisterHandler(deps.Auth))

		pages.GET("/posts/new", handlers.NewPostPageHandler())
		pages.POST("/posts/new", handlers.CreatePostHandler(deps.Posts))
		pages.GET("/posts/:id", handlers.PostDetailHandler(deps.Posts))
		pages.GET("/posts/:id/edit", handlers.EditPostPageHandler(deps.Posts))
		pages.POST("/posts/:id/edit", handlers.UpdatePostHandler(deps.Posts))
		pages.POST("/posts/:id/delete", handlers.DeletePostHandler(deps.Posts))

		pages.GET("/pricing", handlers.PricingHandler(deps.Subscriptions, deps.Payments))
		mypage := pages.Group("/mypage", middleware.RequireLogin(loginPath))
		mypage.GET("", handlers.MyPageHandler(deps.Subscriptions))
		mypage.POST("/subscription/cancel", handlers.CancelSubscriptionHandler(deps.Subscriptions))

		pages.GET("/payment", handlers.PaymentPageHandler(deps.Payments))
		pages.POST("/payment/card", handlers.CardPaymentHandler(deps.Payments))
		pages.POST("/payment/bank-transfer", handlers.BankTransferHandler(deps.Payments))
		pages.POST("/payment/toss", handlers.TossPaymentHandler(deps.Payments, cfg.Server.PublicBaseURL))
		pages.GET("/payment/success", handlers.PaymentSuccessHandler(deps.Payments))
		pages.GET("/payment/fail", handlers.PaymentFailHandler(deps.Payments))
	}

	return r, nil
}

// newBackendProxy 는 /api 요청 경로를 바꾸지 않고 백엔드 호스트로 보낸다.
func newBackendProxy(baseURL string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(baseURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", baseURL)
	}
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = target.Host
		},
		ErrorHandler: func(w http.ResponseWriter, req *http.Request, err error) {
			logger.ErrorWithFields("api proxy failed", logger.Fields{
				"path":       req.URL.Path,
				"error":      err.Error(),
				"request_id": req.Header.Get("X-Request-Id"),
			})
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return proxy, nil
}
