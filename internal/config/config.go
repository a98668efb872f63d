package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Session  SessionConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	BodyLimit          int
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

type AIConfig struct {
	LLMProvider           string // "gemini", "openai", "anthropic", "ollama", "huggingface"
	LLMModel              string
	GeminiApiKey          string
	GeminiBaseURL         string
	OpenAIApiKey          string
	OpenAIBaseURL         string
	AnthropicApiKey       string
	OllamaBaseURL         string
	HuggingFaceApiKey     string
	HuggingFaceBaseURL    string
	RequestTimeout        time.Duration
	RateLimitPerMinute    int
	DefaultQuestionCount  int
	ExplanationMaxTokens  int
	GenerationTemperature float64
}

type SessionConfig struct {
	FanOutConcurrency int
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			BodyLimit:          getEnvAsInt("APP_BODY_LIMIT_BYTES", 4*1024*1024),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:           getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:              getEnv("LLM_MODEL", ""),
			GeminiApiKey:          getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiBaseURL:         getEnv("GEMINI_BASE_URL", ""),
			OpenAIApiKey:          getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", ""),
			AnthropicApiKey:       getEnv("ANTHROPIC_API_KEY", ""),
			OllamaBaseURL:         getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceApiKey:     getEnv("HUGGINGFACE_API_KEY", ""),
			HuggingFaceBaseURL:    getEnv("HUGGINGFACE_BASE_URL", ""),
			RequestTimeout:        getEnvAsDuration("AI_REQUEST_TIMEOUT", 60*time.Second),
			RateLimitPerMinute:    getEnvAsInt("AI_RATE_LIMIT_PER_MINUTE", 10),
			DefaultQuestionCount:  getEnvAsInt("AI_DEFAULT_QUESTION_COUNT", 10),
			ExplanationMaxTokens:  getEnvAsInt("AI_EXPLANATION_MAX_TOKENS", 0),
			GenerationTemperature: getEnvAsFloat("AI_TEMPERATURE", 0),
		},
		Session: SessionConfig{
			FanOutConcurrency: getEnvAsInt("SESSION_FANOUT_CONCURRENCY", 8),
		},
		Otel: OtelConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "interview-prep-be"),
		},
	}
}

// ProviderCredentials returns the key and base URL of the configured provider.
func (a AIConfig) ProviderCredentials() (apiKey, baseURL string) {
	switch a.LLMProvider {
	case "openai":
		return a.OpenAIApiKey, a.OpenAIBaseURL
	case "anthropic":
		return a.AnthropicApiKey, ""
	case "ollama":
		return "", a.OllamaBaseURL
	case "huggingface":
		return a.HuggingFaceApiKey, a.HuggingFaceBaseURL
	default:
		return a.GeminiApiKey, a.GeminiBaseURL
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := strings.ToLower(getEnv(key, ""))
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
