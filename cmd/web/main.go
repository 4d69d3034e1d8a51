package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/httpclient"
	"dragons-web/cmd/web/router"
	"dragons-web/config"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.Validate(gin.Mode() == gin.ReleaseMode); err != nil {
		logger.ErrorWithFields("invalid configuration", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
	if cfg.Server.PublicBaseURL == "" {
		logger.WarnWithFields("server.public_base_url is empty, toss return urls will use the request host", nil)
	}

	client := backendclient.New(cfg.Backend.BaseURL, httpclient.Config{Timeout: cfg.Backend.Timeout})
	r, err := router.New(&cfg, router.NewDeps(client, &cfg))
	if err != nil {
		logger.ErrorWithFields("failed to build router", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.InfoWithFields("starting web server", logger.Fields{
			"addr":    cfg.Server.Addr,
			"backend": cfg.Backend.BaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithFields("web server stopped unexpectedly", logger.Fields{"error": err.Error()})
			os.Exit(1)
		}
	}()

	// Graceful shutdown 설정
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.InfoWithFields("received shutdown signal, shutting down web server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("graceful shutdown failed", logger.Fields{"error": err.Error()})
	}
	logger.InfoWithFields("web server stopped", nil)
}
