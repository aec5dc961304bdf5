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
	App       AppConfig
	Providers ProviderConfig
	Agent     AgentConfig
	Knowledge KnowledgeConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	OtelEnabled        bool
	JWTSecret          string
}

type ProviderConfig struct {
	OpenAIKey      string
	OpenAIModels   []string
	GroqKey        string
	GroqModels     []string
	OllamaBaseURL  string
	OllamaModels   []string
	AttemptTimeout time.Duration
	HealthCacheTTL time.Duration
}

type AgentConfig struct {
	TopicCap       int
	SessionTTL     time.Duration
	DefaultAgentId string
}

type KnowledgeConfig struct {
	EmbeddingProvider    string // "hash" or "ollama"
	OllamaEmbeddingModel string
	EmbeddingDimension   int
	ChunkSize            int
	ChunkOverlap         int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Providers: ProviderConfig{
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModels:   getEnvAsList("OPENAI_MODELS", "gpt-4o-mini,gpt-4o"),
			GroqKey:        getEnv("GROQ_API_KEY", ""),
			GroqModels:     getEnvAsList("GROQ_MODELS", "llama-3.1-8b-instant,llama-3.3-70b-versatile"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModels:   getEnvAsList("OLLAMA_MODELS", "llama3"),
			AttemptTimeout: getEnvAsDuration("PROVIDER_ATTEMPT_TIMEOUT", 15*time.Second),
			HealthCacheTTL: getEnvAsDuration("PROVIDER_HEALTH_CACHE_TTL", 5*time.Minute),
		},
		Agent: AgentConfig{
			TopicCap:       getEnvAsInt("AGENT_TOPIC_CAP", 10),
			SessionTTL:     getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
			DefaultAgentId: getEnv("DEFAULT_AGENT_ID", "venture"),
		},
		Knowledge: KnowledgeConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "hash"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDimension:   getEnvAsInt("EMBEDDING_DIMENSION", 384),
			ChunkSize:            getEnvAsInt("KNOWLEDGE_CHUNK_SIZE", 1500),
			ChunkOverlap:         getEnvAsInt("KNOWLEDGE_CHUNK_OVERLAP", 150),
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

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
