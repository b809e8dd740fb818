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

const testSecret = "0123456789abcdef0123456789abcdef"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "flexbase.db", cfg.DatabasePath)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "sqlite", cfg.Media.Backend)

	ttl, err := cfg.TokenLifetime()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, ttl)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "flexbase.toml", `
port = "9000"
jwt_secret = "`+testSecret+`"
bcrypt_cost = 10
token_ttl = "2h"
log_level = "debug"

[media]
backend = "s3"
s3_bucket = "sneakers"
s3_endpoint = "http://127.0.0.1:9000"
`)
	t.Setenv("PORT", "9100")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port, "env overrides the file")
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "s3", cfg.Media.Backend)
	assert.Equal(t, "sneakers", cfg.Media.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.Media.S3Region, "defaults survive a partial file")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeFile(t, "env.toml", `jwt_secret = "`+testSecret+`"`+"\n"+`database_path = "/tmp/x.db"`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/flexbase.toml")
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.toml", "port = ["))
		assert.Error(t, err)
	})

	t.Run("invalid bcrypt env", func(t *testing.T) {
		t.Setenv("JWT_SECRET", testSecret)
		t.Setenv("BCRYPT_COST", "twelve")
		_, err := Load("")
		assert.ErrorContains(t, err, "BCRYPT_COST")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "at least 32 characters"},
		{"bcrypt too low", func(c *Config) { c.BcryptCost = 3 }, "between 4 and 14"},
		{"bcrypt too high", func(c *Config) { c.BcryptCost = 15 }, "between 4 and 14"},
		{"bad ttl", func(c *Config) { c.TokenTTL = "a week" }, "invalid token ttl"},
		{"negative ttl", func(c *Config) { c.TokenTTL = "-1h" }, "must be positive"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
		{"unknown backend", func(c *Config) { c.Media.Backend = "ftp" }, "unknown media backend"},
		{"filesystem without dir", func(c *Config) {
			c.Media.Backend = "filesystem"
			c.Media.Dir = ""
		}, "media.dir"},
		{"s3 without bucket", func(c *Config) { c.Media.Backend = "s3" }, "media.s3_bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.JWTSecret = testSecret
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
