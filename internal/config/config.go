// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"blog_backend/internal/platform/db"
)

// DefaultSessionSecret is only acceptable outside production.
const DefaultSessionSecret = "dev-session-secret-change-me"

// ErrInsecureSecret is returned when production runs without its own SESSION_SECRET.
var ErrInsecureSecret = errors.New("SESSION_SECRET must be set in prod")

// Config is the application configuration.
type Config struct {
	Port string

	// Env is "dev" (default) or "prod". When "prod", SESSION_SECRET must be set and not the default.
	Env string

	DB db.Config

	// RedisHost enables Redis for sessions and the board cache when set.
	RedisHost     string
	RedisPort     string
	RedisPassword string

	SessionSecret string
	SessionTTL    time.Duration
	SessionCookie string
	CookieSecure  bool

	CacheTTL time.Duration

	// CORSAllowedOrigins is a comma-separated list in CORS_ALLOWED_ORIGINS. When empty, no CORS headers are sent.
	CORSAllowedOrigins []string

	// TrustedProxies lists the IPs or CIDRs (TRUSTED_PROXIES) whose X-Forwarded-For is believed.
	// When empty, the client IP is always the peer address.
	TrustedProxies []string

	// LogFormat is "text" (default) or "json".
	LogFormat string
	LogLevel  string

	// AuthRatePerMin limits POST /login and POST /join per client IP.
	AuthRatePerMin int
}

// LoadDotEnv loads .env into the environment when the file exists.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
}

// Load reads the configuration and rejects settings that are unsafe for the environment.
func Load() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "dev"),
		DB:   db.LoadConfigFromEnv(),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionTTL:    getEnvDuration("SESSION_TTL", 30*time.Minute),
		SessionCookie: getEnv("SESSION_COOKIE", "BLOGSESSION"),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		CORSAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		TrustedProxies:     parseList(getEnv("TRUSTED_PROXIES", "")),

		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		AuthRatePerMin: getEnvInt("AUTH_RATE_PER_MIN", 10),
	}
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.IsProd())
	if os.Getenv("RUN_MIGRATIONS") == "" {
		cfg.DB.RunMigrations = !cfg.IsProd()
	}

	if cfg.IsProd() && cfg.SessionSecret == DefaultSessionSecret {
		return Config{}, ErrInsecureSecret
	}
	for _, p := range cfg.TrustedProxies {
		if !validProxy(p) {
			return Config{}, fmt.Errorf("TRUSTED_PROXIES: invalid IP or CIDR %q", p)
		}
	}
	return cfg, nil
}

// IsProd reports whether the application runs in production.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// RedisEnabled reports whether a Redis host is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port of the Redis server.
func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// NewLogger builds the slog logger described by LogFormat and LogLevel.
func (c Config) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// parseList splits a comma-separated list and trims spaces. Empty strings are omitted.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func validProxy(s string) bool {
	if _, _, err := net.ParseCIDR(s); err == nil {
		return true
	}
	return net.ParseIP(s) != nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
