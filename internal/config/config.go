package config

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultBackendAPIURL      = "http://localhost:3000/api"
	defaultBackendTimeout     = "0s"
	defaultDatabaseURL        = "storefront.db"
	defaultNavigationTTL      = "30m"
	defaultCookieSecure       = "false"
	defaultReceiptTokenSecret = "change-me-receipt-secret"
	defaultReceiptTokenTTL    = "720h"
	defaultAuditRetention     = "2160h"
)

type Config struct {
	AppEnv             string
	HTTPAddr           string
	BackendAPIURL      string
	BackendTimeout     time.Duration
	DatabaseURL        string
	RedisURL           string
	NavigationTTL      time.Duration
	CookieHashKey      []byte
	CookieBlockKey     []byte
	CookieSecure       bool
	ReceiptTokenSecret string
	ReceiptTokenTTL    time.Duration
	AuditRetention     time.Duration
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.BackendAPIURL = strings.TrimSpace(getEnv("BACKEND_API_URL", defaultBackendAPIURL))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.ReceiptTokenSecret = strings.TrimSpace(getEnv("RECEIPT_TOKEN_SECRET", defaultReceiptTokenSecret))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	cfg.BackendTimeout, err = parseDurationEnv("BACKEND_TIMEOUT", defaultBackendTimeout)
	if err != nil {
		return nil, err
	}

	cfg.NavigationTTL, err = parseDurationEnv("NAVIGATION_TTL", defaultNavigationTTL)
	if err != nil {
		return nil, err
	}

	cfg.ReceiptTokenTTL, err = parseDurationEnv("RECEIPT_TOKEN_TTL", defaultReceiptTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg.AuditRetention, err = parseDurationEnv("AUDIT_RETENTION", defaultAuditRetention)
	if err != nil {
		return nil, err
	}

	cfg.CookieHashKey, err = parseKeyEnv("COOKIE_HASH_KEY")
	if err != nil {
		return nil, err
	}
	cfg.CookieBlockKey, err = parseKeyEnv("COOKIE_BLOCK_KEY")
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	// dev keys live only as long as the process
	if cfg.CookieHashKey == nil {
		cfg.CookieHashKey = securecookie.GenerateRandomKey(32)
	}
	if cfg.CookieBlockKey == nil {
		cfg.CookieBlockKey = securecookie.GenerateRandomKey(32)
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	u, err := url.Parse(cfg.BackendAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_API_URL must be an absolute URL, got %q", cfg.BackendAPIURL)
	}
	if cfg.BackendTimeout < 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be >= 0")
	}
	if cfg.NavigationTTL <= 0 {
		return fmt.Errorf("NAVIGATION_TTL must be > 0")
	}
	if cfg.ReceiptTokenTTL <= 0 {
		return fmt.Errorf("RECEIPT_TOKEN_TTL must be > 0")
	}
	if cfg.AuditRetention <= 0 {
		return fmt.Errorf("AUDIT_RETENTION must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if n := len(cfg.CookieHashKey); cfg.CookieHashKey != nil && n < 32 {
		return fmt.Errorf("COOKIE_HASH_KEY must decode to at least 32 bytes, got %d", n)
	}
	if n := len(cfg.CookieBlockKey); cfg.CookieBlockKey != nil && n != 16 && n != 24 && n != 32 {
		return fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes, got %d", n)
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.ReceiptTokenSecret, defaultReceiptTokenSecret) {
			return fmt.Errorf("in prod/release RECEIPT_TOKEN_SECRET must be set and not default")
		}
		if cfg.CookieHashKey == nil || cfg.CookieBlockKey == nil {
			return fmt.Errorf("in prod/release COOKIE_HASH_KEY and COOKIE_BLOCK_KEY must be set")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// parseKeyEnv decodes a base64 key. Unset returns nil.
func parseKeyEnv(name string) ([]byte, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", name, err)
	}
	return key, nil
}

func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
