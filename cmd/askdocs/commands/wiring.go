// ABOUTME: Shared pipeline construction for CLI commands
// ABOUTME: Builds config, OpenAI client, index backend, and orchestrators
package commands

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/askdocs/askdocs/internal/chunker"
	"github.com/askdocs/askdocs/internal/config"
	"github.com/askdocs/askdocs/internal/llm"
	"github.com/askdocs/askdocs/internal/rag"
	"github.com/askdocs/askdocs/internal/vectorstore"
	"github.com/askdocs/askdocs/internal/vectorstore/pgvector"
	"github.com/askdocs/askdocs/internal/vectorstore/qdrant"
)

// pipeline bundles everything a command needs to run the RAG flows.
type pipeline struct {
	cfg      *config.Config
	ingestor *rag.Ingestor
	querier  *rag.Querier
}

// buildPipeline loads .env and config, then wires the orchestrators.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Debug = true
	}

	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		MaxTokens:      cfg.MaxTokens,
		Temperature:    cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	index, err := newIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}

	splitter, err := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("creating splitter: %w", err)
	}

	return &pipeline{
		cfg: cfg,
		ingestor: rag.NewIngestor(rag.IngestorConfig{
			Splitter:  splitter,
			Embedder:  client,
			Index:     index,
			IndexName: cfg.IndexName,
			Dimension: cfg.VectorDimension,
			Metric:    cfg.Metric,
			BatchSize: cfg.UpsertBatchSize,
			Debug:     cfg.Debug,
		}),
		querier: rag.NewQuerier(rag.QuerierConfig{
			Embedder:  client,
			Index:     index,
			Completer: client,
			IndexName: cfg.IndexName,
			TopK:      cfg.TopK,
			Debug:     cfg.Debug,
		}),
	}, nil
}

func newIndex(ctx context.Context, cfg *config.Config) (vectorstore.Index, error) {
	switch cfg.VectorBackend {
	case config.BackendQdrant:
		return qdrant.New(qdrant.Config{
			URL:          cfg.QdrantURL,
			APIKey:       cfg.QdrantAPIKey,
			ReadyTimeout: cfg.IndexReadyTimeout,
		}), nil
	case config.BackendPgvector:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the pgvector backend")
		}
		store, err := pgvector.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to pgvector: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
	}
}
