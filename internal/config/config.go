package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Ai        AIConfig
	Weather   WeatherConfig
	Data      DataConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IndexTopic         string // In-process topic for chat turn indexing jobs
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string // "silent", "error", "warn", "info"
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AIConfig struct {
	LLMProvider   string // "openai", "ollama", "gemini"
	LLMBaseURL    string // Provider endpoint; defaults depend on LLMProvider
	LLMAPIKey     string
	ChatModel     string
	AdvisoryModel string
	VisionModel   string
	Temperature   float64
	MaxTokens     int

	EmbeddingProvider string // "ollama" or "gemini"
	OllamaBaseURL     string
	OllamaModel       string
	GoogleGemini      string
}

type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration
}

type DataConfig struct {
	SchemesPath string // Optional override for the embedded schemes dataset
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "agrisense_jwt_secret_key_2025"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in production")

type modelDefaults struct {
	baseURL  string
	chat     string
	advisory string
	vision   string
}

// defaultsForProvider keeps one provider's endpoint and model names from leaking into another.
func defaultsForProvider(provider string) modelDefaults {
	switch strings.ToLower(provider) {
	case "ollama":
		return modelDefaults{
			baseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			chat:     "llama3.1",
			advisory: "llama3.1",
			vision:   "llava",
		}
	case "gemini":
		return modelDefaults{
			chat:     "gemini-2.0-flash",
			advisory: "gemini-2.0-flash",
			vision:   "gemini-2.0-flash",
		}
	default:
		return modelDefaults{
			baseURL:  "https://api.groq.com/openai/v1",
			chat:     "llama-3.1-8b-instant",
			advisory: "llama-3.3-70b-versatile",
			vision:   "meta-llama/llama-4-scout-17b-16e-instruct",
		}
	}
}

func defaultAPIKey(provider string) string {
	if strings.EqualFold(provider, "gemini") {
		return getEnv("GOOGLE_GEMINI_API_KEY", "")
	}
	return getEnv("GROQ_API_KEY", "")
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET is not set, using the built-in development secret")
		jwtSecret = DefaultJWTSecret
	}

	llmProvider := getEnv("LLM_PROVIDER", "openai")
	defaults := defaultsForProvider(llmProvider)

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IndexTopic:         getEnv("INDEX_TOPIC_NAME", "INDEX_CHAT_TURN"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Auth: AuthConfig{
			JWTSecret: jwtSecret,
			TokenTTL:  getEnvAsDuration("JWT_TTL", 7*24*time.Hour),
		},
		Ai: AIConfig{
			LLMProvider:   llmProvider,
			LLMBaseURL:    getEnv("LLM_BASE_URL", defaults.baseURL),
			LLMAPIKey:     getEnv("LLM_API_KEY", defaultAPIKey(llmProvider)),
			ChatModel:     getEnv("LLM_CHAT_MODEL", defaults.chat),
			AdvisoryModel: getEnv("LLM_ADVISORY_MODEL", defaults.advisory),
			VisionModel:   getEnv("LLM_VISION_MODEL", defaults.vision),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 1024),

			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GoogleGemini:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Weather: WeatherConfig{
			APIKey:   getEnv("OPENWEATHERMAP_KEY", ""),
			BaseURL:  getEnv("OPENWEATHERMAP_BASE_URL", "https://api.openweathermap.org"),
			CacheTTL: getEnvAsDuration("WEATHER_CACHE_TTL", 10*time.Minute),
		},
		Data: DataConfig{
			SchemesPath: getEnv("SCHEMES_FILE_PATH", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "agrisense-backend"),
		},
	}
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Auth.JWTSecret == DefaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
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
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("10m") or plain seconds ("600").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
