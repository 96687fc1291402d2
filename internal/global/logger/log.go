package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"techfest-backend/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// Get returns the process-wide logger.
func Get() *slog.Logger {
	once.Do(func() {
		cfg := config.Get()
		instance = build(cfg, os.Stdout).With(
			"app_name", "techfest-backend",
			"env", string(cfg.Mode),
		)
	})
	return instance
}

func build(cfg *config.Config, console io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Mode == config.ModeRelease,
		Level:     getLogLevel(cfg.Log.Level),
	}

	if cfg.Mode == config.ModeRelease && cfg.Log.FilePath != "" {
		// rotate on disk in release mode
		w := &lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(console, opts))
}

// New returns a logger tagged with the module name.
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

// WithContext adds the client address of the current request to the logger.
func WithContext(base *slog.Logger, c interface {
	ClientIP() string
	GetHeader(string) string
}) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		l = l.With("x_forwarded_for", forwardedFor)
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		l = l.With("x_real_ip", realIP)
	}
	return l
}

func getLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
