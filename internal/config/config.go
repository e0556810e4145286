package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendREST         = "rest"
	BackendGenAI        = "genai"
	BackendGenerativeAI = "generativeai"
)

type Config struct {
	// Server
	Port          string
	Env           string
	AllowedOrigin string
	StaticDir     string

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiBackend        string
	GeminiBaseURL        string
	GeminiTimeoutSeconds int

	// Assistant persona; empty means the built-in knowledge base
	SystemPromptFile string

	// Leads
	SiteName               string
	LeadNotifyEmail        string
	LeadDedupWindowSeconds int

	// EmailJS
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Optional stores
	DatabaseURL string
	RedisURL    string
}

// ClientConfig is what the terminal chat widget needs.
type ClientConfig struct {
	RelayURL       string
	TimeoutSeconds int
	LogLevel       string
	LogFormat      string
	LogFile        string
}

func LoadClient() (*ClientConfig, error) {
	godotenv.Load()

	cfg := &ClientConfig{
		RelayURL:       getEnvOrDefault("CHAT_RELAY_URL", "http://localhost:8080/api/chat"),
		TimeoutSeconds: getEnvAsIntOrDefault("CHAT_TIMEOUT_SECONDS", 60),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		LogFile:        getEnvOrDefault("CHAT_LOG_FILE", "chat.log"),
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("CHAT_TIMEOUT_SECONDS must be positive, got %d", cfg.TimeoutSeconds)
	}
	return cfg, nil
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		Env:                    getEnvOrDefault("ENV", "development"),
		AllowedOrigin:          getEnvOrDefault("ALLOWED_ORIGIN", "*"),
		StaticDir:              getEnvOrDefault("STATIC_DIR", ""),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		LogFile:                getEnvOrDefault("LOG_FILE", ""),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiModel:            getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash-preview-09-2025"),
		GeminiBackend:          strings.ToLower(getEnvOrDefault("GEMINI_BACKEND", BackendREST)),
		GeminiBaseURL:          getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiTimeoutSeconds:   getEnvAsIntOrDefault("GEMINI_TIMEOUT_SECONDS", 30),
		SystemPromptFile:       getEnvOrDefault("SYSTEM_PROMPT_FILE", ""),
		SiteName:               getEnvOrDefault("SITE_NAME", "Pioneering Marketing"),
		LeadNotifyEmail:        getEnvOrDefault("LEAD_NOTIFY_EMAIL", "info@example.com"),
		LeadDedupWindowSeconds: getEnvAsIntOrDefault("LEAD_DEDUP_WINDOW_SECONDS", 600),
		EmailJSServiceID:       getEnvOrDefault("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID:      getEnvOrDefault("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:       getEnvOrDefault("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey:      getEnvOrDefault("EMAILJS_PRIVATE_KEY", ""),
		SMTPHost:               getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:               getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:               getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:               getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom:               getEnvOrDefault("SMTP_FROM", "noreply@example.com"),
		DatabaseURL:            getEnvOrDefault("DATABASE_URL", ""),
		RedisURL:               getEnvOrDefault("REDIS_URL", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.GeminiBackend {
	case BackendREST, BackendGenAI, BackendGenerativeAI:
	default:
		return fmt.Errorf("unknown GEMINI_BACKEND %q (want %s, %s or %s)",
			c.GeminiBackend, BackendREST, BackendGenAI, BackendGenerativeAI)
	}
	if c.GeminiTimeoutSeconds <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT_SECONDS must be positive, got %d", c.GeminiTimeoutSeconds)
	}
	// A zero TTL would make a dedupe key permanent.
	if c.LeadDedupWindowSeconds <= 0 {
		return fmt.Errorf("LEAD_DEDUP_WINDOW_SECONDS must be positive, got %d", c.LeadDedupWindowSeconds)
	}
	return nil
}

// EmailJSEnabled reports whether enough EmailJS settings are present to send.
func (c *Config) EmailJSEnabled() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSPublicKey != ""
}

// SystemInstruction returns the contents of SYSTEM_PROMPT_FILE, or fallback
// when no file is configured.
func (c *Config) SystemInstruction(fallback string) (string, error) {
	if c.SystemPromptFile == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(c.SystemPromptFile)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("system prompt file %s is empty", c.SystemPromptFile)
	}
	return text, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
