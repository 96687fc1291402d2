package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Driver string

const (
	DriverMySQL  Driver = "mysql"
	DriverSQLite Driver = "sqlite"
)

// Environment keys are TECHFEST_<SECTION>_<FIELD>. envconfig also falls back to the bare
// tag name, so only multi-word fields carry an envconfig tag.
type Config struct {
	Host     string   `mapstructure:"host"`
	Port     string   `mapstructure:"port"`
	Prefix   string   `mapstructure:"prefix"`
	Mode     Mode     `mapstructure:"mode"`
	Database Database `mapstructure:"database"`
	Redis    Redis    `mapstructure:"redis"`
	JWT      JWT      `mapstructure:"jwt"`
	Log      Log      `mapstructure:"log"`
	Admin    Admin    `mapstructure:"admin"`
	Login    Login    `mapstructure:"login"`
	Cors     Cors     `mapstructure:"cors"`
}

type Database struct {
	Driver     Driver `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	DBName     string `envconfig:"DB_NAME" mapstructure:"db_name"`
	SQLitePath string `envconfig:"SQLITE_PATH" mapstructure:"sqlite_path"`
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET" mapstructure:"access_secret"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE" mapstructure:"access_expire"` // seconds
}

type Log struct {
	FilePath   string `envconfig:"FILE_PATH" mapstructure:"file_path"`
	Level      string `mapstructure:"level"`                               // debug, info, warn, error
	MaxSize    int    `envconfig:"MAX_SIZE" mapstructure:"max_size"`       // MB
	MaxBackups int    `envconfig:"MAX_BACKUPS" mapstructure:"max_backups"` // rotated files kept
	MaxAge     int    `envconfig:"MAX_AGE" mapstructure:"max_age"`         // days
	Compress   bool   `mapstructure:"compress"`
}

// Admin is the predetermined identity created by the one-time admin bootstrap.
type Admin struct {
	Bootstrap bool   `mapstructure:"bootstrap"`
	Name      string `mapstructure:"name"`
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
}

type Login struct {
	MaxAttempts int   `envconfig:"MAX_ATTEMPTS" mapstructure:"max_attempts"`
	Window      int64 `mapstructure:"window"` // seconds
}

type Cors struct {
	AllowOrigins []string `envconfig:"ALLOW_ORIGINS" mapstructure:"allow_origins"`
}

func (r Redis) Enabled() bool {
	return r.Host != ""
}
