package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"slidegen/internal/logger"
)

// Config carries all environment-driven settings of the pipeline.
type Config struct {
	// OCR Configuration
	OCRProvider         string // ocrspace, vision, documentai
	OCRSpaceAPIKey      string
	OCRSpaceEndpoint    string
	OCRTimeout          time.Duration
	OCRMaxRetries       int
	OCRRetryDelay       time.Duration
	OCRLanguage         string

	// Google Cloud Configuration (vision / documentai providers)
	GoogleCloudProject         string
	GoogleCloudLocation        string
	DocumentAIProcessorID      string
	DocumentAIProcessorVersion string

	// Language Model Configuration
	LLMProvider  string // openai, gemini
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string

	// Template Configuration
	TemplateDir string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the configuration from environment variables and validates
// the keys of the selected providers.
func Load() (*Config, error) {
	config := &Config{
		OCRProvider:                getEnv("OCR_PROVIDER", "ocrspace"),
		OCRSpaceAPIKey:             getEnv("OCRSPACE_API_KEY", ""),
		OCRSpaceEndpoint:           getEnv("OCRSPACE_ENDPOINT", ""),
		OCRTimeout:                 getDurationEnv("OCR_TIMEOUT", 30*time.Second),
		OCRMaxRetries:              getIntEnv("OCR_MAX_RETRIES", 3),
		OCRRetryDelay:              getDurationEnv("OCR_RETRY_DELAY", 3*time.Second),
		OCRLanguage:                getEnv("OCR_LANGUAGE", "eng"),
		GoogleCloudProject:         getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:        getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID:      getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		DocumentAIProcessorVersion: getEnv("DOCUMENT_AI_PROCESSOR_VERSION", ""),
		LLMProvider:                getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:               getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:                getEnv("OPENAI_MODEL", ""),
		GeminiAPIKey:               getEnv("GEMINI_API_KEY", ""),
		GeminiModel:                getEnv("GEMINI_MODEL", ""),
		TemplateDir:                getEnv("TEMPLATE_DIR", "templates"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		LogFormat:                  getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:              getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:                  getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validate only requires the keys of the providers actually selected; the
// Google providers additionally resolve credentials from the standard
// GOOGLE_* environment at client construction.
func (c *Config) validate() error {
	switch c.OCRProvider {
	case "ocrspace":
		if c.OCRSpaceAPIKey == "" {
			return fmt.Errorf("OCRSPACE_API_KEY is required for the ocrspace provider")
		}
	case "vision":
		// Credentials checked at client construction.
	case "documentai":
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the documentai provider")
		}
		if c.DocumentAIProcessorID == "" {
			return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required for the documentai provider")
		}
	default:
		return fmt.Errorf("unknown OCR_PROVIDER %q", c.OCRProvider)
	}

	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	return nil
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

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
