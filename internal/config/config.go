package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// linkOverridePrefix marks environment variables that replace a bundle's
// primary drive link, e.g. DRIVE_LINK_PCM_12 for bundle "pcm_12".
const linkOverridePrefix = "DRIVE_LINK_"

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RazorpayKeyID      string
	RazorpayKeySecret  string
	CORSAllowedOrigins []string
	RedisURL           string
	RateLimitWindow    time.Duration
	RateLimitMax       int
	LogFormat          string
	LogLevel           string
	DriveLinkOverrides map[string]string
}

// Load reads configuration from environment variables and optional .env files.
// The Razorpay credentials are mandatory: an instance without them cannot
// create orders or verify signatures, so absence is a startup error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RazorpayKeyID:      strings.TrimSpace(k.String("RAZORPAY_KEY_ID")),
		RazorpayKeySecret:  strings.TrimSpace(k.String("RAZORPAY_KEY_SECRET")),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		RateLimitWindow:    parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:       parseInt(k.String("RATE_LIMIT_MAX"), 20),
		LogFormat:          valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:           valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		DriveLinkOverrides: linkOverrides(k),
	}

	if cfg.RazorpayKeyID == "" {
		return nil, errors.New("RAZORPAY_KEY_ID is required")
	}
	if cfg.RazorpayKeySecret == "" {
		return nil, errors.New("RAZORPAY_KEY_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func linkOverrides(k *koanf.Koanf) map[string]string {
	overrides := map[string]string{}
	for key, value := range k.All() {
		if !strings.HasPrefix(key, linkOverridePrefix) {
			continue
		}
		url, ok := value.(string)
		if !ok || strings.TrimSpace(url) == "" {
			continue
		}
		bundleID := strings.ToLower(strings.TrimPrefix(key, linkOverridePrefix))
		overrides[bundleID] = strings.TrimSpace(url)
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return n
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
