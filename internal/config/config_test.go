package config

import (
	"testing"
	"time"
)

// setBaseEnv pins every variable the loader reads so ambient environment
// cannot leak into the tests.
func setBaseEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"OCR_PROVIDER", "OCRSPACE_API_KEY", "OCRSPACE_ENDPOINT",
		"OCR_TIMEOUT", "OCR_MAX_RETRIES", "OCR_RETRY_DELAY", "OCR_LANGUAGE",
		"GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_LOCATION",
		"DOCUMENT_AI_PROCESSOR_ID", "DOCUMENT_AI_PROCESSOR_VERSION",
		"LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"TEMPLATE_DIR", "LOG_LEVEL", "LOG_FORMAT", "LOG_TIME_FORMAT", "LOG_OUTPUT",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
	t.Setenv("OCRSPACE_API_KEY", "ocr-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OCRProvider != "ocrspace" {
		t.Errorf("OCRProvider = %q, want ocrspace", cfg.OCRProvider)
	}
	if cfg.OCRMaxRetries != 3 {
		t.Errorf("OCRMaxRetries = %d, want 3", cfg.OCRMaxRetries)
	}
	if cfg.OCRRetryDelay != 3*time.Second {
		t.Errorf("OCRRetryDelay = %v, want 3s", cfg.OCRRetryDelay)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("OCRLanguage = %q, want eng", cfg.OCRLanguage)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("LLMProvider = %q, want openai", cfg.LLMProvider)
	}
	if cfg.TemplateDir != "templates" {
		t.Errorf("TemplateDir = %q, want templates", cfg.TemplateDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("OCR_MAX_RETRIES", "5")
	t.Setenv("OCR_RETRY_DELAY", "500ms")
	t.Setenv("OCR_LANGUAGE", "ara")
	t.Setenv("TEMPLATE_DIR", "/srv/templates")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OCRMaxRetries != 5 {
		t.Errorf("OCRMaxRetries = %d, want 5", cfg.OCRMaxRetries)
	}
	if cfg.OCRRetryDelay != 500*time.Millisecond {
		t.Errorf("OCRRetryDelay = %v, want 500ms", cfg.OCRRetryDelay)
	}
	if cfg.OCRLanguage != "ara" {
		t.Errorf("OCRLanguage = %q, want ara", cfg.OCRLanguage)
	}
	if cfg.TemplateDir != "/srv/templates" {
		t.Errorf("TemplateDir = %q, want /srv/templates", cfg.TemplateDir)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"ocrspace without key", map[string]string{"OCRSPACE_API_KEY": ""}},
		{"unknown ocr provider", map[string]string{"OCR_PROVIDER": "tesseract"}},
		{"documentai without project", map[string]string{"OCR_PROVIDER": "documentai", "DOCUMENT_AI_PROCESSOR_ID": "proc"}},
		{"documentai without processor", map[string]string{"OCR_PROVIDER": "documentai", "GOOGLE_CLOUD_PROJECT": "proj"}},
		{"openai without key", map[string]string{"OPENAI_API_KEY": ""}},
		{"gemini without key", map[string]string{"LLM_PROVIDER": "gemini"}},
		{"unknown llm provider", map[string]string{"LLM_PROVIDER": "llama"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load returned nil error, want validation failure")
			}
		})
	}
}

func TestLoadValidProviderCombinations(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"vision needs no key here", map[string]string{"OCR_PROVIDER": "vision", "OCRSPACE_API_KEY": ""}},
		{"documentai fully configured", map[string]string{
			"OCR_PROVIDER":             "documentai",
			"GOOGLE_CLOUD_PROJECT":     "proj",
			"DOCUMENT_AI_PROCESSOR_ID": "proc",
		}},
		{"gemini with key", map[string]string{
			"LLM_PROVIDER":   "gemini",
			"GEMINI_API_KEY": "gemini-key",
			"OPENAI_API_KEY": "",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err != nil {
				t.Errorf("Load: %v", err)
			}
		})
	}
}
