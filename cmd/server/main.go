package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"release-viewer/internal/adapters/primary/http/handlers"
	"release-viewer/internal/adapters/primary/http/middleware"
	"release-viewer/internal/adapters/secondary/github"
	"release-viewer/internal/adapters/secondary/session"
	"release-viewer/internal/config"
	"release-viewer/internal/core/services"
	"release-viewer/internal/metrics"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		log.Info("metrics enabled")
	}

	// Session store (memory, redis or postgres)
	store, closeStore, err := session.OpenStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer closeStore()

	sm := session.NewManager(&cfg.Session, store)

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	releaseSource := github.NewReleaseClient(&cfg.GitHub, m)
	releaseCache := session.NewSessionCache(sm)

	// Core Services (Application Layer)
	releaseSvc := services.NewReleaseService(releaseSource, releaseCache, cfg.Viewer.Location(), cfg.Viewer.DefaultLimit, m)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(releaseSvc, sm)

	// Setup router
	router := gin.New()
	handlers.LoadTemplates(router)
	router.Use(middleware.RequestID(), middleware.Logging("/healthz", "/metrics"), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	pages := router.Group("/", middleware.Session(sm))
	h.RegisterPages(pages)

	api := router.Group("/api/v1", middleware.Session(sm))
	h.RegisterRoutes(api)

	log.WithFields(log.Fields{
		"owner":     cfg.GitHub.Owner,
		"repo":      cfg.GitHub.Repo,
		"max_pages": cfg.GitHub.MaxPages(),
		"token":     cfg.GitHub.Token != "",
	}).Info("release source configured")

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
