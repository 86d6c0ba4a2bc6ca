package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	BaseURL            string
	TokenSecret        string
	TokenStrategy      string
	TokenTTL           time.Duration
	ShutdownTimeout    time.Duration
	QRSize             int
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
	LogLevel           string
}

const (
	defaultRunAddress      = ":3000"
	defaultTokenSecret     = "change-me-in-production"
	defaultTokenStrategy   = "hmac"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultQRSize          = 256
	defaultRateLimitRPS    = 5
	defaultRateLimitBurst  = 10
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables.
// Variables missing from the process environment are taken from ENV_FILE when it is set.
func Load() (*Config, error) {
	lookup, err := withEnvFile(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

func withEnvFile(lookup envLookup) (envLookup, error) {
	path, ok := lookup("ENV_FILE")
	if !ok || path == "" {
		return lookup, nil
	}
	fileEnv, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		BaseURL:         getString(lookup, "BASE_URL", ""),
		TokenSecret:     getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenStrategy:   getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		QRSize:          getInt(lookup, "QR_SIZE", defaultQRSize),
		RateLimitRPS:    getFloat(lookup, "RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:  getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}
	origins := getString(lookup, "CORS_ALLOWED_ORIGINS", "*")

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "Public API base URL embedded into QR payloads")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Auth token strategy: hmac or jwt")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.QRSize, "qr-size", cfg.QRSize, "QR image size in pixels")
	fs.Float64Var(&cfg.RateLimitRPS, "rate-limit", cfg.RateLimitRPS, "Requests per second allowed per client IP on sensitive routes")
	fs.IntVar(&cfg.RateLimitBurst, "rate-burst", cfg.RateLimitBurst, "Burst size of the per client IP limiter")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&origins, "cors-origins", origins, "Comma separated list of allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSAllowedOrigins = splitList(origins)
	cfg.TokenStrategy = strings.ToLower(strings.TrimSpace(cfg.TokenStrategy))
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.QRSize <= 0 {
		cfg.QRSize = defaultQRSize
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL must be provided")
	}

	if u, err := url.Parse(cfg.BaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %q", cfg.BaseURL)
	}

	switch cfg.TokenStrategy {
	case "hmac", "jwt":
	default:
		return nil, fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
