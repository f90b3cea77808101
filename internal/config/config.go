// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strconv"

	"docscan/internal/extract"
	"docscan/internal/logger"
)

type Config struct {
	// Google Cloud Configuration
	GoogleCredentialsFile string // GOOGLE_APPLICATION_CREDENTIALS
	GoogleCredentialsJSON string // GOOGLE_CREDENTIALS

	// OpenAI Configuration (optional, enables LLM field completion)
	OpenAIAPIKey string
	OpenAIModel  string

	// Geometry tuning (empirically tuned defaults, overridable per env)
	Thresholds extract.Thresholds

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	defaults := extract.DefaultThresholds()

	config := &Config{
		GoogleCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", ""),
		Thresholds: extract.Thresholds{
			ReconstructToleranceRatio: getFloatEnv("LINE_TOLERANCE_RATIO", defaults.ReconstructToleranceRatio),
			LineBandRatio:             getFloatEnv("LINE_BAND_RATIO", defaults.LineBandRatio),
			AnchorBandRatio:           getFloatEnv("ANCHOR_BAND_RATIO", defaults.AnchorBandRatio),
			AbsorbGapRatio:            getFloatEnv("ABSORB_GAP_RATIO", defaults.AbsorbGapRatio),
			WordJoinGapRatio:          getFloatEnv("WORD_JOIN_GAP_RATIO", defaults.WordJoinGapRatio),
		},
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// HasGoogleCredentials reports whether an OCR credential is configured.
// The transport constructor enforces this; commands use it to fail fast
// with a configuration message before reading the document.
func (c *Config) HasGoogleCredentials() bool {
	return c.GoogleCredentialsFile != "" || c.GoogleCredentialsJSON != ""
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
