// ABOUTME: MCP tool handler implementations for the askdocs server
// ABOUTME: Drains completion streams into full-text tool results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/askdocs/askdocs/internal/llm"
	"github.com/askdocs/askdocs/internal/models"
	"github.com/askdocs/askdocs/internal/rag"
)

// Querier answers questions and searches the corpus.
type Querier interface {
	AskIndex(ctx context.Context, indexName, question string) (*llm.TokenStream, error)
	Search(ctx context.Context, query string, topK int) ([]models.QueryMatch, error)
}

// Ingester runs a corpus update.
type Ingester interface {
	Ingest(ctx context.Context, docs []models.Document) (rag.IngestStats, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	querier      Querier
	ingester     Ingester
	defaultIndex string
}

// AskCorpus handles the ask_corpus tool. MCP results are not
// streamed, so the token stream is drained into one text block.
func (h *Handlers) AskCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	indexName := request.GetString("corpus", h.defaultIndex)

	stream, err := h.querier.AskIndex(ctx, indexName, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}
	if stream == nil {
		return mcp.NewToolResultText("No relevant documents found; nothing to answer from."), nil
	}

	var answer strings.Builder
	for token := range stream.Tokens() {
		answer.WriteString(token)
	}
	if err := stream.Err(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("completion aborted: %v", err)), nil
	}
	return mcp.NewToolResultText(answer.String()), nil
}

// SearchCorpus handles the search_corpus tool
func (h *Handlers) SearchCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", 5)

	matches, err := h.querier.Search(ctx, query, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"matches": matches})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IngestDocuments handles the ingest_documents tool
func (h *Handlers) IngestDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	docs, err := rag.LoadDocuments([]string{path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading documents: %v", err)), nil
	}

	stats, err := h.ingester.Ingest(ctx, docs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Ingested %d documents: %d chunks, %d vectors upserted.",
		stats.Documents, stats.Chunks, stats.Vectors)), nil
}
