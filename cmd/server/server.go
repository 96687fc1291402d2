package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"techfest-backend/config"
	"techfest-backend/internal/global/database"
	"techfest-backend/internal/global/jwt"
	"techfest-backend/internal/global/logger"
	"techfest-backend/internal/global/middleware"
	"techfest-backend/internal/global/redis"
	"techfest-backend/internal/global/response"
	"techfest-backend/internal/module"
	"techfest-backend/tools"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	database.Init()
	redis.Init()
	jwt.Init()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

// NewEngine builds the router with every registered module mounted under the configured prefix.
func NewEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors(cfg.Cors.AllowOrigins))
	r.Use(middleware.Recovery())

	for _, m := range module.Modules {
		if log != nil {
			log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		}
		m.InitRouter(r.Group("/" + cfg.Prefix))
	}
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, response.ErrRouteNotFound)
	})
	return r
}

func Run() {
	cfg := config.Get()
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           NewEngine(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", "addr", srv.Addr, "mode", cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tools.PanicOnErr(err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if redis.Client != nil {
		_ = redis.Client.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
