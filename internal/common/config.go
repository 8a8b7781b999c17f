package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Raster RasterConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	BasicAuthUser   string
	BasicAuthPass   string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// LLMConfig holds model provider configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// RasterConfig holds PDF rasterization configuration
type RasterConfig struct {
	Pdftoppm    string
	TargetWidth int
	JPEGQuality int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			BasicAuthUser:   getEnv("BASIC_AUTH_USER", ""),
			BasicAuthPass:   getEnv("BASIC_AUTH_PASS", ""),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 32<<20),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 4096),
			Timeout:     getEnvAsDuration("EXTRACT_TIMEOUT", 60*time.Second),
		},
		Raster: RasterConfig{
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TargetWidth: getEnvAsInt("RASTER_TARGET_WIDTH", 1536),
			JPEGQuality: getEnvAsInt("RASTER_JPEG_QUALITY", 85),
		},
	}
}

// Validate reports operator-fixable configuration defects. The server
// still starts without a key; extraction requests then fail with the
// configuration-class error naming the missing setting.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrProviderConfig)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrProviderConfig)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
