package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"filmes-api/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks the keys these tests assert on; viper ignores empty env values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_NAME", "PORT", "DEBUG", "DB_DRIVER", "DB_NAME", "DB_MAX_CONNS",
		"HTTP_REQUEST_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := utils.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "filmes-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, utils.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "PORT=9000\nDEBUG=true\nDB_DRIVER=memory\nDB_NAME=filmes\nHTTP_REQUEST_TIMEOUT=2s\n")

	cfg, err := utils.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, utils.DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "filmes", cfg.Database.Name)
	assert.Equal(t, 2*time.Second, cfg.HTTP.RequestTimeout)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "PORT=9000\nDB_DRIVER=memory\n")
	t.Setenv("PORT", "7070")
	t.Setenv("DB_DRIVER", "gorm")

	cfg, err := utils.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, utils.DriverGorm, cfg.Database.Driver)
}

func TestLoadConfig_InvalidDriver(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "DB_DRIVER=mysql\n")

	_, err := utils.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DB_DRIVER")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := utils.DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "filmes", SSLMode: "disable",
	}
	assert.Equal(t, "host='db' port='5432' user='u' password='p' dbname='filmes' sslmode='disable'", cfg.DSN())
}

func TestDatabaseConfig_DSNEscapesSpecialCharacters(t *testing.T) {
	t.Parallel()

	cfg := utils.DatabaseConfig{
		Host: "db", Port: "5432", User: "film admin", Password: `it's a \secret`, Name: "filmes", SSLMode: "disable",
	}

	parsed, err := pgconn.ParseConfig(cfg.DSN())
	require.NoError(t, err)
	assert.Equal(t, "db", parsed.Host)
	assert.Equal(t, uint16(5432), parsed.Port)
	assert.Equal(t, "film admin", parsed.User)
	assert.Equal(t, `it's a \secret`, parsed.Password)
	assert.Equal(t, "filmes", parsed.Database)
}
