package config

import (
	"errors"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const envPrefix = "TECHFEST"

var (
	cfg  *Config
	once sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("port", "5000")
	v.SetDefault("prefix", "api")
	v.SetDefault("mode", string(ModeDebug))

	v.SetDefault("database.driver", string(DriverSQLite))
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.db_name", "techfest")
	v.SetDefault("database.sqlite_path", "data/techfest.db")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.access_secret", "")
	v.SetDefault("jwt.access_expire", 7*24*60*60)

	v.SetDefault("log.file_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("admin.bootstrap", true)
	v.SetDefault("admin.name", "System Administrator")
	v.SetDefault("admin.email", "admin@gmail.com")
	v.SetDefault("admin.password", "admin123456")

	v.SetDefault("login.max_attempts", 5)
	v.SetDefault("login.window", 15*60)

	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173", "http://localhost:5174"})
}

// Load builds a Config from defaults, the yaml file, .env and the environment, in that order.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Init() {
	once.Do(func() {
		c, err := Load()
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = c
	})
}

// Get returns the loaded config, loading it on first use.
func Get() *Config {
	Init()
	return cfg
}

// Set replaces the active config. Used by tests that build the router without a config file.
func Set(c *Config) {
	once.Do(func() {})
	cfg = c
}
