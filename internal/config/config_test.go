package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("POSTGRES_HOST")
	defer os.Setenv("POSTGRES_HOST", origHost)

	os.Setenv("POSTGRES_HOST", "test-host")
	os.Setenv("POSTGRES_USER", "postgres")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	defer func() {
		os.Unsetenv("POSTGRES_USER")
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("PORT")
	os.Unsetenv("DEBUG_PORT")

	cfg := Load()

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "80", cfg.Port)
	assert.Equal(t, "5678", cfg.DebugPort)
	assert.Equal(t, 10, cfg.Database.ReadyIntervalSec)
	assert.Equal(t, 5, cfg.Database.ReadyTimeoutSec)
	assert.Equal(t, 5, cfg.Database.ReadyRetries)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
}

func TestIsDevelopment(t *testing.T) {
	os.Setenv("APP_ENV", EnvDevelopment)
	defer os.Unsetenv("APP_ENV")

	cfg := Load()
	assert.True(t, cfg.IsDevelopment())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
