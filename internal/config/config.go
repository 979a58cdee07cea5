package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Env string

	// Remote API
	APIBaseURL string
	APITimeout time.Duration
	UserAgent  string

	// Cart persistence
	CartFile     string
	CartRedisURL string
	CartOwner    string

	// Session token storage
	TokenFile string

	// Image upload limits
	ImageMaxWidth  int
	ImageMaxHeight int
	ImageMaxBytes  int64

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Environment
		Env: getEnv("ENV", "development"),

		// Remote API
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
		APITimeout: parseDuration(getEnv("API_TIMEOUT", "15s")),
		UserAgent:  getEnv("USER_AGENT", "FieldMart/1.0 storefront"),

		// Cart persistence
		CartFile:     getEnv("CART_FILE", configPath("cart.json")),
		CartRedisURL: getEnv("CART_REDIS_URL", ""),
		CartOwner:    getEnv("CART_OWNER", "guest"),

		// Session token storage
		TokenFile: getEnv("TOKEN_FILE", configPath("token")),

		// Image upload limits
		ImageMaxWidth:  parseInt(getEnv("IMAGE_MAX_WIDTH", "2000"), 2000),
		ImageMaxHeight: parseInt(getEnv("IMAGE_MAX_HEIGHT", "2000"), 2000),
		ImageMaxBytes:  int64(parseInt(getEnv("IMAGE_MAX_BYTES", "10485760"), 10485760)),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func configPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "fieldmart", name)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	value, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Second
	}
	return value
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
