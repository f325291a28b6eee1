package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Corpus   CorpusConfig
	Search   SearchConfig
	Session  SessionConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type CorpusConfig struct {
	Source      string // "file" or "postgres"
	CorpusPath  string
	VectorsPath string
}

type SearchConfig struct {
	TopK             int
	IntentClassifier string // "rule" or "llm"
	IntentThreshold  float64
	AuditTurns       bool
}

type SessionConfig struct {
	Backend     string // "memory" or "redis"
	IdleTimeout time.Duration
	HistoryCap  int
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
	Jina         string
	ReloadTopic  string // Index reload topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "ollama", "huggingface"
	LLMModel          string // e.g. "llama3", "qwen2.5"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Corpus: CorpusConfig{
			Source:      getEnv("CORPUS_SOURCE", "file"),
			CorpusPath:  getEnv("CORPUS_PATH", "data/corpus.jsonl"),
			VectorsPath: getEnv("CORPUS_VECTORS_PATH", "data/vectors.json"),
		},
		Search: SearchConfig{
			TopK:             getEnvAsInt("SEARCH_TOP_K", 5),
			IntentClassifier: getEnv("INTENT_CLASSIFIER", "rule"),
			IntentThreshold:  getEnvAsFloat("INTENT_THRESHOLD", 0.4),
			AuditTurns:       getEnv("AUDIT_TURNS", "false") == "true",
		},
		Session: SessionConfig{
			Backend:     getEnv("SESSION_BACKEND", "memory"),
			IdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 1*time.Hour),
			HistoryCap:  getEnvAsInt("SESSION_HISTORY_CAP", 50),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HF_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			ReloadTopic:  getEnv("INDEX_RELOAD_TOPIC_NAME", "INDEX_RELOAD"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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
