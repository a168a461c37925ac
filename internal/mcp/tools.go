// ABOUTME: MCP tool definitions and registration for the askdocs server
// ABOUTME: Exposes corpus question answering, search, and ingestion
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, querier Querier, ingester Ingester, defaultIndex string) *Handlers {
	handlers := &Handlers{
		querier:      querier,
		ingester:     ingester,
		defaultIndex: defaultIndex,
	}

	// 1. ask_corpus - answer a question from the indexed corpus
	server.AddTool(mcp.Tool{
		Name:        "ask_corpus",
		Description: "Answer a natural-language question using the indexed document corpus. Retrieves relevant chunks and generates an answer with source citations when known.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
				"corpus": map[string]interface{}{
					"type":        "string",
					"description": "Optional index name to query (defaults to the configured index)",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskCorpus)

	// 2. search_corpus - raw similarity search without completion
	server.AddTool(mcp.Tool{
		Name:        "search_corpus",
		Description: "Run a similarity search over the indexed corpus and return the matching chunks with scores, without generating an answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of matches to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchCorpus)

	// 3. ingest_documents - index documents from a local path
	server.AddTool(mcp.Tool{
		Name:        "ingest_documents",
		Description: "Chunk, embed, and index the .txt/.md documents found at a local path (file or directory).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "File or directory to ingest",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestDocuments)

	return handlers
}
