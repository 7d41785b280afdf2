package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret          string
	AdminEmail         string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type AssistantConfig struct {
	GeminiAPIKey      string
	KnowledgeBasePath string
	RequestTimeout    time.Duration
	AnalyticsTopic    string
	EnrichmentTopic   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			AdminEmail:         getEnv("ADMIN_EMAIL", ""),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Assistant: AssistantConfig{
			// A missing key surfaces at call time as a service error, not eagerly.
			GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
			KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base.yaml"),
			RequestTimeout:    getEnvAsDuration("GENERATION_TIMEOUT", 60*time.Second),
			AnalyticsTopic:    getEnv("QUERY_ANSWERED_TOPIC_NAME", "QUERY_ANSWERED"),
			EnrichmentTopic:   getEnv("QUERY_ENRICHED_TOPIC_NAME", "QUERY_ENRICHED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
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
