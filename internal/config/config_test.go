// ABOUTME: Tests for environment-driven configuration
// ABOUTME: Verifies defaults, env overrides, and validation failures
package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.VectorBackend != BackendQdrant {
		t.Errorf("VectorBackend = %q, want %q", cfg.VectorBackend, BackendQdrant)
	}
	if cfg.IndexName != "askdocs" {
		t.Errorf("IndexName = %q, want askdocs", cfg.IndexName)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.ChunkSize)
	}
	if cfg.UpsertBatchSize != 50 {
		t.Errorf("UpsertBatchSize = %d, want 50", cfg.UpsertBatchSize)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.IndexReadyTimeout != 30*time.Second {
		t.Errorf("IndexReadyTimeout = %v, want 30s", cfg.IndexReadyTimeout)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INDEX_NAME", "docs-prod")
	t.Setenv("VECTOR_BACKEND", "pgvector")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "100")
	t.Setenv("UPSERT_BATCH_SIZE", "25")
	t.Setenv("INDEX_READY_TIMEOUT", "5s")
	t.Setenv("ASKDOCS_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.IndexName != "docs-prod" {
		t.Errorf("IndexName = %q, want docs-prod", cfg.IndexName)
	}
	if cfg.VectorBackend != BackendPgvector {
		t.Errorf("VectorBackend = %q, want pgvector", cfg.VectorBackend)
	}
	if cfg.ChunkSize != 500 || cfg.ChunkOverlap != 100 {
		t.Errorf("chunking = %d/%d, want 500/100", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.UpsertBatchSize != 25 {
		t.Errorf("UpsertBatchSize = %d, want 25", cfg.UpsertBatchSize)
	}
	if cfg.IndexReadyTimeout != 5*time.Second {
		t.Errorf("IndexReadyTimeout = %v, want 5s", cfg.IndexReadyTimeout)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			VectorBackend:   BackendQdrant,
			IndexName:       "askdocs",
			VectorDimension: 1536,
			ChunkSize:       1000,
			ChunkOverlap:    0,
			UpsertBatchSize: 50,
			TopK:            5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.VectorBackend = "pinecone" }, true},
		{"empty index name", func(c *Config) { c.IndexName = "" }, true},
		{"zero dimension", func(c *Config) { c.VectorDimension = 0 }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"overlap too large", func(c *Config) { c.ChunkOverlap = 1000 }, true},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, true},
		{"zero batch size", func(c *Config) { c.UpsertBatchSize = 0 }, true},
		{"zero topK", func(c *Config) { c.TopK = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
