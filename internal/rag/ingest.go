// ABOUTME: Ingestor drives the chunk → embed → batched upsert pipeline
// ABOUTME: Fail-fast: the first error aborts the remaining documents
package rag

import (
	"context"
	"fmt"
	"log"

	"github.com/askdocs/askdocs/internal/chunker"
	"github.com/askdocs/askdocs/internal/models"
	"github.com/askdocs/askdocs/internal/vectorstore"
)

// Embedder converts text into fixed-dimension vectors.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// IngestStats summarizes a completed ingestion run.
type IngestStats struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
	Vectors   int `json:"vectors"`
}

// IngestorConfig wires the ingestion pipeline.
type IngestorConfig struct {
	Splitter  *chunker.Splitter
	Embedder  Embedder
	Index     vectorstore.Index
	IndexName string
	Dimension int
	Metric    string
	BatchSize int
	Debug     bool
}

// Ingestor runs corpus updates against a vector index.
type Ingestor struct {
	splitter  *chunker.Splitter
	embedder  Embedder
	index     vectorstore.Index
	indexName string
	dimension int
	metric    string
	batchSize int
	debug     bool
}

// NewIngestor creates an ingestion orchestrator.
func NewIngestor(cfg IngestorConfig) *Ingestor {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	metric := cfg.Metric
	if metric == "" {
		metric = "cosine"
	}
	return &Ingestor{
		splitter:  cfg.Splitter,
		embedder:  cfg.Embedder,
		index:     cfg.Index,
		indexName: cfg.IndexName,
		dimension: cfg.Dimension,
		metric:    metric,
		batchSize: batchSize,
		debug:     cfg.Debug,
	}
}

// Ingest ensures the index exists, then chunks, embeds, and upserts
// each document. Record ids are deterministic (source + chunk index)
// so re-ingesting the same documents overwrites instead of
// duplicating. There is no retry and no per-document isolation: the
// first failure aborts the remaining documents and propagates.
func (ing *Ingestor) Ingest(ctx context.Context, docs []models.Document) (IngestStats, error) {
	var stats IngestStats

	if err := ing.index.EnsureIndex(ctx, ing.indexName, ing.dimension, ing.metric); err != nil {
		return stats, fmt.Errorf("ensuring index %q: %w", ing.indexName, err)
	}

	for _, doc := range docs {
		chunks := ing.splitter.Split(doc)
		stats.Documents++
		if len(chunks) == 0 {
			continue
		}
		stats.Chunks += len(chunks)

		texts := make([]string, len(chunks))
		for i, ch := range chunks {
			texts[i] = ch.Text
		}

		vectors, err := ing.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return stats, fmt.Errorf("embedding %q: %w", doc.Source(), err)
		}

		records := make([]models.VectorRecord, len(chunks))
		for i, ch := range chunks {
			records[i] = models.RecordFromChunk(ch, vectors[i])
		}

		for start := 0; start < len(records); start += ing.batchSize {
			end := start + ing.batchSize
			if end > len(records) {
				end = len(records)
			}
			if err := ing.index.Upsert(ctx, ing.indexName, records[start:end]); err != nil {
				return stats, fmt.Errorf("upserting %q batch %d: %w", doc.Source(), start/ing.batchSize, err)
			}
			stats.Vectors += end - start
		}

		if ing.debug {
			log.Printf("ingested %q: %d chunks", doc.Source(), len(chunks))
		}
	}

	return stats, nil
}
