// ABOUTME: CLI command to run the MCP server over stdio
// ABOUTME: Exposes ask_corpus, search_corpus, and ingest_documents tools
package commands

import (
	"log"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs/internal/mcp"
)

// NewMCPCmd creates the mcp command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdio.

Tools:
  ask_corpus        answer a question from the indexed corpus
  search_corpus     similarity search without completion
  ingest_documents  index .txt/.md files from a local path`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}

	srv := mcpserver.NewMCPServer(
		"askdocs",
		versionInfo.Version,
	)
	mcp.RegisterTools(srv, p.querier, p.ingestor, p.cfg.IndexName)

	log.Println("askdocs MCP server starting on stdio...")
	return mcpserver.ServeStdio(srv)
}
