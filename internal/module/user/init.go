package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"techfest-backend/config"
	"techfest-backend/internal/global/database"
	"techfest-backend/internal/global/jwt"
	"techfest-backend/internal/global/logger"
	"techfest-backend/internal/global/middleware"
	"techfest-backend/internal/global/redis"
	"techfest-backend/tools"

	"golang.org/x/crypto/bcrypt"
)

var (
	log         *slog.Logger
	svc         *Service
	tokenParser middleware.TokenParser
)

type ModuleUser struct{}

func (u *ModuleUser) GetName() string {
	return "User"
}

func (u *ModuleUser) Init() {
	log = logger.New("User")
	cfg := config.Get()

	var limiter AttemptLimiter = nopLimiter{}
	if redis.Client != nil {
		limiter = NewRedisLimiter(redis.Client, cfg.Login.MaxAttempts, time.Duration(cfg.Login.Window)*time.Second)
	}

	issuer := jwt.Default()
	svc = NewService(
		NewGormStore(database.DB),
		tools.NewBcryptHasher(bcrypt.DefaultCost),
		issuer,
		WithLimiter(limiter),
		WithAdmin(AdminIdentity{
			Name:     cfg.Admin.Name,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		}),
		WithLogger(log),
	)
	tokenParser = issuer

	if cfg.Admin.Bootstrap {
		bootstrapOnStart(context.Background())
	}
}

// bootstrapOnStart seeds the admin account. Failures are logged and never stop the server.
func bootstrapOnStart(ctx context.Context) {
	result, err := svc.BootstrapAdmin(ctx)
	switch {
	case errors.Is(err, ErrAdminAlreadyExists):
		log.Info("admin already exists")
	case err != nil:
		log.Error("admin bootstrap failed", "error", err)
	default:
		log.Info("admin created", "user_id", result.User.ID, "email", result.User.Email)
	}
}
