package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 256, cfg.WSSendBuffer)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, []byte(devSecret), cfg.Secret())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []byte("s3cret"), cfg.Secret())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
}

func TestParseRejectsMalformedValue(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Env:             EnvDevelopment,
			Port:            3000,
			LogLevel:        "info",
			TokenTTL:        time.Hour,
			StorageType:     StorageMemory,
			WSSendBuffer:    16,
			ShutdownTimeout: time.Second,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"privileged port", func(c *Config) { c.Port = 80 }, "PORT"},
		{"port too high", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"unknown env", func(c *Config) { c.Env = "staging" }, "APP_ENV"},
		{"production without secret", func(c *Config) { c.Env = EnvProduction }, "JWT_SECRET"},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, "TOKEN_TTL"},
		{"unknown storage", func(c *Config) { c.StorageType = "disk" }, "STORAGE_TYPE"},
		{"redis without url", func(c *Config) { c.StorageType = StorageRedis }, "REDIS_URL"},
		{"empty buffer", func(c *Config) { c.WSSendBuffer = 0 }, "WS_SEND_BUFFER"},
		{"zero shutdown", func(c *Config) { c.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := Config{Env: EnvDevelopment, LogLevel: "info"}.Validate()
	require.Error(t, err)

	for _, name := range []string{"PORT", "TOKEN_TTL", "STORAGE_TYPE", "WS_SEND_BUFFER", "SHUTDOWN_TIMEOUT"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WS_SEND_BUFFER=32\n"), 0o600))
	// Setenv registers the restore, Unsetenv leaves the key free for the file
	t.Setenv("WS_SEND_BUFFER", "")
	require.NoError(t, os.Unsetenv("WS_SEND_BUFFER"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.WSSendBuffer)
}

func TestLoadEnvironmentWinsOverDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=4000\n"), 0o600))
	t.Setenv("PORT", "5000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadWithoutDotenv(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
