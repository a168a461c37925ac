// ABOUTME: Querier answers questions via embed → search → streamed completion
// ABOUTME: Zero retrieval matches short-circuit to "no answer", not an error
package rag

import (
	"context"
	"fmt"
	"log"

	"github.com/askdocs/askdocs/internal/llm"
	"github.com/askdocs/askdocs/internal/models"
	"github.com/askdocs/askdocs/internal/vectorstore"
)

// Completer streams a completion for a prompt.
type Completer interface {
	StreamCompletion(ctx context.Context, prompt string) (*llm.TokenStream, error)
}

// QuerierConfig wires the question-answering pipeline.
type QuerierConfig struct {
	Embedder  Embedder
	Index     vectorstore.Index
	Completer Completer
	IndexName string
	TopK      int
	Debug     bool
}

// Querier runs one question through retrieval and completion.
type Querier struct {
	embedder  Embedder
	index     vectorstore.Index
	completer Completer
	indexName string
	topK      int
	debug     bool
}

// NewQuerier creates a query orchestrator.
func NewQuerier(cfg QuerierConfig) *Querier {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}
	return &Querier{
		embedder:  cfg.Embedder,
		index:     cfg.Index,
		completer: cfg.Completer,
		indexName: cfg.IndexName,
		topK:      topK,
		debug:     cfg.Debug,
	}
}

// Ask answers a question against the configured index.
func (q *Querier) Ask(ctx context.Context, question string) (*llm.TokenStream, error) {
	return q.AskIndex(ctx, q.indexName, question)
}

// AskIndex answers a question against a specific index. When the
// search returns no matches, it returns (nil, nil) and never calls
// the completion service: there is nothing to answer from.
func (q *Querier) AskIndex(ctx context.Context, indexName, question string) (*llm.TokenStream, error) {
	matches, err := q.SearchIndex(ctx, indexName, question, q.topK)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		if q.debug {
			log.Printf("no matches for question in %q", indexName)
		}
		return nil, nil
	}

	stream, err := q.completer.StreamCompletion(ctx, BuildPrompt(question, matches))
	if err != nil {
		return nil, fmt.Errorf("starting completion: %w", err)
	}
	return stream, nil
}

// Search embeds the query and returns the topK nearest chunks from
// the configured index.
func (q *Querier) Search(ctx context.Context, query string, topK int) ([]models.QueryMatch, error) {
	return q.SearchIndex(ctx, q.indexName, query, topK)
}

// SearchIndex embeds the query and searches a specific index.
func (q *Querier) SearchIndex(ctx context.Context, indexName, query string, topK int) ([]models.QueryMatch, error) {
	if topK <= 0 {
		topK = q.topK
	}
	vector, err := q.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	matches, err := q.index.Query(ctx, indexName, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("searching index %q: %w", indexName, err)
	}
	return matches, nil
}
