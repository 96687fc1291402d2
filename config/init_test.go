package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "mode: debug\n"))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, "api", c.Prefix)
	assert.Equal(t, DriverSQLite, c.Database.Driver)
	assert.Equal(t, int64(604800), c.JWT.AccessExpire)
	assert.Equal(t, "admin@gmail.com", c.Admin.Email)
	assert.True(t, c.Admin.Bootstrap)
	assert.Equal(t, 5, c.Login.MaxAttempts)
	assert.False(t, c.Redis.Enabled())
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `
mode: release
port: "8080"
database:
  driver: mysql
  db_name: fest
jwt:
  access_secret: from-file
redis:
  host: 10.0.0.2
`))
	t.Setenv("TECHFEST_JWT_ACCESS_SECRET", "from-env")
	t.Setenv("TECHFEST_DATABASE_DB_NAME", "fest_env")
	t.Setenv("TECHFEST_LOGIN_MAX_ATTEMPTS", "3")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeRelease, c.Mode)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, DriverMySQL, c.Database.Driver)
	assert.Equal(t, "fest_env", c.Database.DBName)
	assert.Equal(t, "from-env", c.JWT.AccessSecret)
	assert.Equal(t, 3, c.Login.MaxAttempts)
	assert.True(t, c.Redis.Enabled())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
