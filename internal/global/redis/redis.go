package redis

import (
	"context"
	"net"
	"time"

	"techfest-backend/config"
	"techfest-backend/tools"

	"github.com/redis/go-redis/v9"
)

// Client is nil when no redis host is configured.
var Client *redis.Client

func Init() {
	cfg := config.Get().Redis
	if !cfg.Enabled() {
		return
	}
	Client = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tools.PanicOnErr(Client.Ping(ctx).Err())
}
