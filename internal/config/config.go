// ABOUTME: Centralized configuration for the askdocs RAG service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Vector index backends.
const (
	BackendQdrant   = "qdrant"
	BackendPgvector = "pgvector"
)

// Config holds all configuration for the RAG pipeline and servers
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	MaxTokens      int
	Temperature    float32

	// Vector index settings
	VectorBackend     string
	IndexName         string
	VectorDimension   int
	Metric            string
	QdrantURL         string
	QdrantAPIKey      string
	DatabaseURL       string
	IndexReadyTimeout time.Duration

	// Pipeline settings
	ChunkSize       int
	ChunkOverlap    int
	UpsertBatchSize int
	TopK            int

	// Server settings
	HTTPAddr string
	Debug    bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		ChatModel:         getEnv("ASKDOCS_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("ASKDOCS_EMBEDDING_MODEL", "text-embedding-3-small"),
		MaxTokens:         getEnvInt("MAX_TOKENS", 512),
		Temperature:       float32(getEnvFloat("TEMPERATURE", 0.7)),
		VectorBackend:     getEnv("VECTOR_BACKEND", BackendQdrant),
		IndexName:         getEnv("INDEX_NAME", "askdocs"),
		VectorDimension:   getEnvInt("VECTOR_DIMENSION", 1536),
		Metric:            getEnv("SIMILARITY_METRIC", "cosine"),
		QdrantURL:         getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:      os.Getenv("QDRANT_API_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		IndexReadyTimeout: getEnvDuration("INDEX_READY_TIMEOUT", 30*time.Second),
		ChunkSize:         getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:      getEnvInt("CHUNK_OVERLAP", 0),
		UpsertBatchSize:   getEnvInt("UPSERT_BATCH_SIZE", 50),
		TopK:              getEnvInt("TOP_K", 5),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		Debug:             getEnvBool("ASKDOCS_DEBUG", false),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.VectorBackend != BackendQdrant && c.VectorBackend != BackendPgvector {
		return fmt.Errorf("VECTOR_BACKEND must be %q or %q, got %q", BackendQdrant, BackendPgvector, c.VectorBackend)
	}
	if c.IndexName == "" {
		return fmt.Errorf("INDEX_NAME must not be empty")
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be 0 <= overlap < CHUNK_SIZE, got %d", c.ChunkOverlap)
	}
	if c.UpsertBatchSize <= 0 {
		return fmt.Errorf("UPSERT_BATCH_SIZE must be positive, got %d", c.UpsertBatchSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
