package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"ProfileBoard/internal/auth"
	"ProfileBoard/internal/config"
	"ProfileBoard/internal/handler"
	"ProfileBoard/internal/logger"
	"ProfileBoard/internal/router"
	"ProfileBoard/internal/session"
	"ProfileBoard/internal/storage"
	"ProfileBoard/internal/web"

	"github.com/gin-gonic/gin"
)

// @title        ProfileBoard API
// @version      1.0
// @description  로그인 사용자의 프로필 조회 및 수정
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open storage", "path", cfg.DBPath, "error", err)
	}
	defer store.Close()

	if n, err := store.DeleteExpiredSessions(context.Background()); err != nil {
		log.Warn("failed to purge expired sessions", "error", err)
	} else if n > 0 {
		log.Info("purged expired sessions", "count", n)
	}

	tmpl, err := web.Templates()
	if err != nil {
		log.Fatal("failed to parse templates", "error", err)
	}

	sessions := session.NewManager(store, auth.NewTokenSigner(cfg.SessionSecret, cfg.SessionTTL), session.Options{
		CookieName: cfg.SessionCookie,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.CookieSecure,
	}, log)

	maxUpload := cfg.MaxUploadMB << 20
	h := handler.New(store, handler.Options{
		UploadDir:      cfg.UploadDir,
		MaxAvatarBytes: maxUpload,
		InviteRequired: cfg.InviteCode != "",
	}, log)

	engine := router.New(router.Config{
		UploadDir:         cfg.UploadDir,
		MaxUploadBytes:    maxUpload,
		CORSOrigins:       cfg.CORSOrigins,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		InviteCode:        cfg.InviteCode,
		SwaggerEnabled:    cfg.SwaggerEnabled,
	}, h, sessions, tmpl, log)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", "http://"+cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	graceCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	stop()

	if err := httpServer.Shutdown(graceCtx); err != nil {
		log.Error("http graceful shutdown failed", "error", err)
		return
	}
	log.Info("server shut down cleanly")
}
