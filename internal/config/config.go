package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TokenStoreFile     = "file"
	TokenStorePostgres = "postgres"
	TokenStoreMemory   = "memory"
)

// Config holds client configuration sourced from env vars.
type Config struct {
	APIBaseURL  string
	TokenStore  string
	TokenPath   string
	DatabaseURL string
	HTTPTimeout time.Duration
	Debounce    time.Duration
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:  strings.TrimRight(fallback(os.Getenv("STOCKROOM_API_URL"), "http://localhost:8000/api/v1"), "/"),
		TokenStore:  strings.ToLower(fallback(os.Getenv("STOCKROOM_TOKEN_STORE"), TokenStoreFile)),
		TokenPath:   strings.TrimSpace(os.Getenv("STOCKROOM_TOKEN_PATH")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPTimeout: seconds(os.Getenv("STOCKROOM_HTTP_TIMEOUT_SECONDS"), 15*time.Second),
		Debounce:    millis(os.Getenv("STOCKROOM_DEBOUNCE_MS"), 500*time.Millisecond),
	}

	switch cfg.TokenStore {
	case TokenStoreFile, TokenStoreMemory:
	case TokenStorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required when STOCKROOM_TOKEN_STORE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown STOCKROOM_TOKEN_STORE %q", cfg.TokenStore)
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return Config{}, fmt.Errorf("STOCKROOM_API_URL must be an http(s) URL, got %q", cfg.APIBaseURL)
	}

	return cfg, nil
}

// SandboxConfig holds settings for the local sandbox API.
type SandboxConfig struct {
	Port      string
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
}

// LoadSandbox reads sandbox settings; every value has a development default.
func LoadSandbox() SandboxConfig {
	cfg := SandboxConfig{
		Port:      fallback(os.Getenv("PORT"), "8000"),
		JWTSecret: fallback(os.Getenv("JWT_SECRET"), "sandbox-secret"),
		JWTIssuer: fallback(os.Getenv("JWT_ISSUER"), "stockroom-sandbox"),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}
	return cfg
}

// HTTPAddress returns the host:port pair for the sandbox to bind to.
func (c SandboxConfig) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func seconds(value string, def time.Duration) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func millis(value string, def time.Duration) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 0 {
		return time.Duration(n) * time.Millisecond
	}
	return def
}
