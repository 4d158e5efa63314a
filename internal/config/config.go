// Package config loads the admin front-end settings: an optional YAML file
// first, then environment variables (and .env) on top.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr" validate:"required"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	APIBaseURL string        `yaml:"api_base_url" validate:"required,url"`
	APITimeout time.Duration `yaml:"api_timeout"  validate:"gt=0"`

	// RenderWait bounds how long a page request waits for a fetch to settle
	// before the loading indicator is rendered instead.
	RenderWait     time.Duration `yaml:"render_wait"      validate:"gt=0"`
	ViewSessionTTL time.Duration `yaml:"view_session_ttl" validate:"gt=0"`
	ViewCookieName string        `yaml:"view_cookie_name" validate:"required"`

	FlashSecret  string `yaml:"flash_secret"  validate:"required,min=16"`
	CookieSecure bool   `yaml:"cookie_secure"`

	Storage Storage `yaml:"storage"`
}

type Storage struct {
	Driver          string        `yaml:"driver"            validate:"oneof=none local s3"`
	LocalURLPrefix  string        `yaml:"local_url_prefix"`
	S3Region        string        `yaml:"s3_region"         validate:"required_if=Driver s3"`
	S3Bucket        string        `yaml:"s3_bucket"         validate:"required_if=Driver s3"`
	S3Prefix        string        `yaml:"s3_prefix"`
	S3PublicBaseURL string        `yaml:"s3_public_base_url"`
	S3PresignTTL    time.Duration `yaml:"s3_presign_ttl"`
}

func Defaults() Config {
	return Config{
		HTTPAddr:       ":8080",
		LogLevel:       "info",
		APIBaseURL:     "http://localhost:5000/api",
		APITimeout:     10 * time.Second,
		RenderWait:     3 * time.Second,
		ViewSessionTTL: 30 * time.Minute,
		ViewCookieName: "admin_view",
		FlashSecret:    "dev-flash-secret-change-me",
		Storage: Storage{
			Driver:         "none",
			LocalURLPrefix: "/uploads",
			S3Prefix:       "uploads",
			S3PresignTTL:   15 * time.Minute,
		},
	}
}

// Load reads .env (if present), the YAML file named by CONFIG_FILE (if
// set), and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional; prod uses real env vars

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.APIBaseURL, "API_BASE_URL")
	setString(&cfg.ViewCookieName, "VIEW_COOKIE_NAME")
	setString(&cfg.FlashSecret, "FLASH_SECRET")
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.LocalURLPrefix, "LOCAL_UPLOAD_URL_PREFIX")
	setString(&cfg.Storage.S3Region, "S3_REGION")
	setString(&cfg.Storage.S3Bucket, "S3_BUCKET")
	setString(&cfg.Storage.S3Prefix, "S3_PREFIX")
	setString(&cfg.Storage.S3PublicBaseURL, "S3_PUBLIC_BASE_URL")

	for key, dst := range map[string]*time.Duration{
		"API_TIMEOUT":      &cfg.APITimeout,
		"RENDER_WAIT":      &cfg.RenderWait,
		"VIEW_SESSION_TTL": &cfg.ViewSessionTTL,
		"S3_PRESIGN_TTL":   &cfg.Storage.S3PresignTTL,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	if v := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogAttrs lists the non-secret settings for the startup log line.
func (c Config) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("http_addr", c.HTTPAddr),
		slog.String("api_base_url", c.APIBaseURL),
		slog.Duration("api_timeout", c.APITimeout),
		slog.Duration("render_wait", c.RenderWait),
		slog.Duration("view_session_ttl", c.ViewSessionTTL),
		slog.String("storage_driver", c.Storage.Driver),
	}
}
