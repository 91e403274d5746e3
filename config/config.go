package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultUserAgent is a desktop Chrome UA. The mirror site rejects clients
// that identify as scripts.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// UpstreamConfig controls the outbound fetch of the mirror page.
type UpstreamConfig struct {
	// BaseURL is the mirror download page prefix; the post ID is appended.
	BaseURL string // default: "https://threadster.app/download/"

	// UserAgent is sent on every upstream request.
	UserAgent string

	// Timeout bounds the whole upstream round trip.
	Timeout time.Duration // default: 20s

	// MaxBodyBytes caps how much of the upstream page is read.
	MaxBodyBytes int64 // default: 10 MiB

	// TLSFingerprint presents a Chrome ClientHello on HTTPS connections.
	TLSFingerprint bool // default: true
}

// CORSConfig controls cross-origin access to /api/*.
type CORSConfig struct {
	// AllowOrigin restricts the API to one origin. Empty or "*" allows all.
	AllowOrigin string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("THREADSTER_HOST", "0.0.0.0"),
			Port: envIntOr("THREADSTER_PORT", envIntOr("PORT", 8080)),
			Mode: envOr("THREADSTER_MODE", "release"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        envOr("THREADSTER_UPSTREAM_URL", "https://threadster.app/download/"),
			UserAgent:      envOr("THREADSTER_USER_AGENT", DefaultUserAgent),
			Timeout:        envDurationOr("THREADSTER_TIMEOUT", 20*time.Second),
			MaxBodyBytes:   envInt64Or("THREADSTER_MAX_BODY", 10<<20),
			TLSFingerprint: envBoolOr("THREADSTER_TLS_FINGERPRINT", true),
		},
		CORS: CORSConfig{
			AllowOrigin: os.Getenv("THREADSTER_CORS_ORIGIN"),
		},
		Log: LogConfig{
			Level:  envOr("THREADSTER_LOG_LEVEL", "info"),
			Format: envOr("THREADSTER_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
