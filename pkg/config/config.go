package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	SessionSecret string
	SessionTTL    time.Duration

	PageSize int

	// LoadMoreDelay simulates catalog latency on "load more" pages.
	LoadMoreDelay time.Duration
}

// Load reads configuration from the environment, after merging an optional
// .env file. Real environment variables win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:        getEnv("APP_ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		SessionSecret: getEnv("SESSION_SECRET", "dev-only-secret"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		PageSize:      getEnvInt("PAGE_SIZE", 8),
		LoadMoreDelay: getEnvDuration("LOAD_MORE_DELAY", 0),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
