package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port            string
	ShutdownTimeout int // seconds to drain in-flight requests on shutdown

	// Upstream geolocation provider
	UpstreamBaseURL string        // the IP is appended to this URL
	UpstreamTimeout time.Duration // total timeout of one outbound request

	// Client IP resolution
	ForwardedHeader string // header carrying the original client IP

	// CORS
	CORSAllowedOrigins []string

	// Logging
	LogLevel  string
	LogPretty bool
	LogFile   string
}

// Load reads configuration from environment variables with defaults
// A .env file in the working directory is loaded first when present
func Load() *Config {
	// In production/Docker, environment variables are set directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8000"),
		ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),

		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://ip-api.com/json/"),
		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 5*time.Second),

		ForwardedHeader: getEnv("FORWARDED_HEADER", "X-Forwarded-For"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		LogFile:   getEnv("LOG_FILE", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as a boolean
// Accepts the forms strconv.ParseBool does (1, true, FALSE, ...)
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration reads a duration such as "5s" or "1500ms".
// A bare number is taken as seconds. Non-positive values fall back to the default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if seconds, err := strconv.ParseFloat(valueStr, 64); err == nil {
		if seconds <= 0 {
			return defaultValue
		}
		return time.Duration(seconds * float64(time.Second))
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}

// getEnvAsList reads a comma-separated list, dropping empty entries
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}
	return values
}
