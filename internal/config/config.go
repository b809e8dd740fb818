// Package config resolves runtime settings from built-in defaults, an
// optional TOML file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the variable that points at a TOML config file.
const EnvConfigPath = "FLEXBASE_CONFIG"

// Config is the fully resolved application configuration.
type Config struct {
	Port         string      `toml:"port"`
	DatabasePath string      `toml:"database_path"`
	JWTSecret    string      `toml:"jwt_secret"`
	TokenTTL     string      `toml:"token_ttl"` // Go duration, e.g. "168h"
	BcryptCost   int         `toml:"bcrypt_cost"`
	CookieSecure bool        `toml:"cookie_secure"`
	LogLevel     string      `toml:"log_level"` // debug, info, warn or error
	Media        MediaConfig `toml:"media"`
}

// MediaConfig selects and configures the upload storage backend.
// Backend determines which of the remaining fields are relevant.
type MediaConfig struct {
	Backend string `toml:"backend"` // "sqlite", "filesystem" or "s3"

	// Filesystem-specific fields (only used when Backend == "filesystem")
	Dir string `toml:"dir,omitempty"`

	// S3-specific fields (only used when Backend == "s3")
	S3Bucket    string `toml:"s3_bucket,omitempty"`
	S3Region    string `toml:"s3_region,omitempty"`
	S3Endpoint  string `toml:"s3_endpoint,omitempty"`
	S3AccessKey string `toml:"s3_access_key,omitempty"`
	S3SecretKey string `toml:"s3_secret_key,omitempty"`
	S3Prefix    string `toml:"s3_prefix,omitempty"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:         "8080",
		DatabasePath: "flexbase.db",
		TokenTTL:     "168h",
		BcryptCost:   12,
		CookieSecure: true,
		LogLevel:     "info",
		Media: MediaConfig{
			Backend:  "sqlite",
			Dir:      "uploads",
			S3Region: "us-east-1",
		},
	}
}

// Load resolves the configuration. A .env file in the working directory is
// loaded first (missing is fine), then the TOML file at path (or at
// $FLEXBASE_CONFIG when path is empty), then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays TOML values onto cfg; keys absent from r keep their value.
func (c *Config) decode(r io.Reader) error {
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("PORT", &c.Port)
	setString("DATABASE_PATH", &c.DatabasePath)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("TOKEN_TTL", &c.TokenTTL)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("MEDIA_BACKEND", &c.Media.Backend)
	setString("MEDIA_DIR", &c.Media.Dir)
	setString("S3_BUCKET", &c.Media.S3Bucket)
	setString("S3_REGION", &c.Media.S3Region)
	setString("S3_ENDPOINT", &c.Media.S3Endpoint)
	setString("S3_ACCESS_KEY", &c.Media.S3AccessKey)
	setString("S3_SECRET_KEY", &c.Media.S3SecretKey)
	setString("S3_PREFIX", &c.Media.S3Prefix)

	// Secure cookies stay on unless explicitly disabled for local development.
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		c.CookieSecure = v != "false"
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		c.BcryptCost = parsed
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost must be between 4 and 14, got %d", c.BcryptCost)
	}
	if ttl, err := c.TokenLifetime(); err != nil {
		return err
	} else if ttl <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	switch c.Media.Backend {
	case "sqlite":
	case "filesystem":
		if c.Media.Dir == "" {
			return errors.New("filesystem media backend requires media.dir to be set")
		}
	case "s3":
		if c.Media.S3Bucket == "" {
			return errors.New("s3 media backend requires media.s3_bucket to be set")
		}
	default:
		return fmt.Errorf("unknown media backend: %s", c.Media.Backend)
	}
	return nil
}

// TokenLifetime parses TokenTTL.
func (c *Config) TokenLifetime() (time.Duration, error) {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid token ttl %q: %w", c.TokenTTL, err)
	}
	return d, nil
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level: %s", c.LogLevel)
}
