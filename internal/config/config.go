package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Port          int
	PublicBaseURL string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxWorkers    int

	// Extractor configuration
	OpenRouterAPIKey  string
	OpenRouterModelID string
	OpenRouterTimeout time.Duration
	FakeExtractor     bool

	// Upload handling
	ReceiptsDir   string
	KeepTempFiles bool
	MaxUploadSize int64

	// Preference store configuration
	PostgresURL string
	BoltPath    string

	// Optional S3-compatible storage for receipt images
	S3Endpoint        string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string
	S3Region          string
	S3PublicURL       string

	// Display
	CurrencyGlyph string
}

// LoadConfig loads the application configuration from environment
// variables, reading a .env file from the working directory first if
// one exists.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment variables from .env file")
	}

	port := getEnvInt("PORT", 8042)

	config := &Config{
		Port:          port,
		PublicBaseURL: strings.TrimSuffix(getEnvString("PUBLIC_BASE_URL", fmt.Sprintf("http://localhost:%d", port)), "/"),
		ReadTimeout:   getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:  getEnvDuration("WRITE_TIMEOUT", 90*time.Second),
		MaxWorkers:    getEnvInt("MAX_WORKERS", 5),

		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModelID: getEnvString("OPENROUTER_MODEL_ID", "openai/gpt-4.1-nano"),
		OpenRouterTimeout: getEnvDuration("OPENROUTER_TIMEOUT", 60*time.Second),
		FakeExtractor:     getEnvBool("FAKE_EXTRACTOR", false),

		ReceiptsDir:   getEnvString("RECEIPTS_DIR", filepath.Join(os.TempDir(), "receipt-split")),
		KeepTempFiles: getEnvBool("DEBUG_KEEP_TEMP_FILES", false),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) << 20,

		PostgresURL: os.Getenv("POSTGRES_DB_URL"),
		BoltPath:    getEnvString("BOLT_PATH", "preferences.db"),

		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessKeySecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:          getEnvString("S3_BUCKET", "receipts"),
		S3Region:          getEnvString("S3_REGION", "us-east-1"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),

		CurrencyGlyph: getEnvString("CURRENCY_GLYPH", "€"),
	}

	validateConfig(config)

	return config, nil
}

// validateConfig warns about configuration that will limit
// functionality but does not stop startup.
func validateConfig(config *Config) {
	if config.OpenRouterAPIKey == "" && !config.FakeExtractor {
		slog.Warn("no OpenRouter API key provided, receipt extraction will fail",
			"hint", "set OPENROUTER_API_KEY or FAKE_EXTRACTOR=true")
	}
	if os.Getenv("PUBLIC_BASE_URL") == "" {
		slog.Warn("PUBLIC_BASE_URL not set, using localhost default",
			"publicBaseURL", config.PublicBaseURL)
	}
	if config.PostgresURL == "" {
		slog.Info("POSTGRES_DB_URL not set, using local bolt preference store",
			"path", config.BoltPath)
	}
}

// UseS3 reports whether the S3 uploader is fully configured.
func (c *Config) UseS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKeyID != "" && c.S3AccessKeySecret != ""
}

// getEnvInt gets an integer from an environment variable with a default
// value.
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer environment value, using default",
			"key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

// getEnvString gets a string from an environment variable with a
// default value.
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean from an environment variable with a default
// value.
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvDuration gets a duration in seconds from an environment
// variable with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid duration environment value, using default",
			"key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
