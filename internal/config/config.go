package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of saur-cli.
type Config struct {
	Env             string
	LogLevel        string
	CredentialsFile string
	DevMode         bool
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
}

// Load loads configuration from environment variables and an optional .env
// file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:             GetEnv("SAUR_ENV", "dev"),
		LogLevel:        GetEnv("SAUR_LOG_LEVEL", "info"),
		CredentialsFile: GetEnv("SAUR_CREDENTIALS_FILE", "credentials.json"),
		DevMode:         GetEnvBool("SAUR_DEV_MODE", false),
		BaseURL:         GetEnv("SAUR_BASE_URL", ""),
		Timeout:         GetEnvDuration("SAUR_TIMEOUT", 30*time.Second),
		MaxRetries:      GetEnvInt("SAUR_MAX_RETRIES", 3),
	}
}

// GetEnv returns the environment variable value for key, or def if unset or empty.
func GetEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// GetEnvInt returns the environment variable value for key parsed as int, or def if unset or invalid.
func GetEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

// GetEnvBool returns the environment variable value for key parsed as bool, or def if unset or invalid.
func GetEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

// GetEnvDuration returns the environment variable value for key parsed as time.Duration, or def if unset or invalid.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return def
}
