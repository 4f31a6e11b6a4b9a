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
	SMTP     SMTPConfig
	Ai       AIConfig
	Learner  LearnerConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port                string
	BaseURL             string
	ClientURL           string
	Environment         string
	LogFilePath         string
	NotificationLogPath string
	CorsAllowedOrigins  string
	NatsURL             string
	RedisURL            string
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Email != ""
}

type AIConfig struct {
	BackendURL        string        // Base URL of the AI backend serving /api/roadmap and /api/analyze
	LLMProvider       string        // "backend", "openrouter" or "ollama"
	LLMModel          string        // e.g. "openai/gpt-4o-mini", "llama3"
	RoadmapSource     string        // "backend" or "llm"
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OllamaBaseURL     string
	RequestTimeout    time.Duration
}

type LearnerConfig struct {
	StoreDriver          string // "postgres", "redis" or "memory"
	Timezone             string
	DailyTaskLimit       int
	NotificationCapacity int
	TasksPerWeek         int
	ChatSessionTTL       time.Duration
}

// Location resolves Timezone, falling back to UTC.
func (c LearnerConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown LEARNER_TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                getEnv("APP_PORT", "3000"),
			BaseURL:             getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:           getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:         getEnv("GO_ENV", "development"),
			LogFilePath:         getEnv("LOG_FILE_PATH", "app.log"),
			NotificationLogPath: getEnv("NOTIFICATION_LOG_FILE_PATH", "notification.log"),
			CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:             getEnv("NATS_URL", ""),
			RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 72*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "EduMate AI"),
		},
		Ai: AIConfig{
			BackendURL:        strings.TrimRight(getEnv("AI_BACKEND_URL", "http://localhost:5000"), "/"),
			LLMProvider:       getEnv("LLM_PROVIDER", "backend"),
			LLMModel:          getEnv("LLM_MODEL", "openai/gpt-4o-mini"),
			RoadmapSource:     getEnv("ROADMAP_SOURCE", "backend"),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			RequestTimeout:    getEnvAsDuration("AI_REQUEST_TIMEOUT", 60*time.Second),
		},
		Learner: LearnerConfig{
			StoreDriver:          getEnv("LEARNER_STORE", "postgres"),
			Timezone:             getEnv("LEARNER_TIMEZONE", "UTC"),
			DailyTaskLimit:       getEnvAsInt("DAILY_TASK_LIMIT", 4),
			NotificationCapacity: getEnvAsInt("NOTIFICATION_CAPACITY", 50),
			TasksPerWeek:         getEnvAsInt("TASKS_PER_WEEK", 5),
			ChatSessionTTL:       getEnvAsDuration("CHAT_SESSION_TTL", 24*time.Hour),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "edumate-be"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
