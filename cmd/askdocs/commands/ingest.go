// ABOUTME: CLI command to ingest documents into the vector index
// ABOUTME: Loads files or directories, then chunks, embeds, and upserts
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs/internal/rag"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <path>...",
		Short: "Index documents into the vector store",
		Long: `Ingest documents into the vector index.

Paths may be files or directories; directories are walked recursively
and .txt/.md files are picked up.

Examples:
  askdocs ingest ./docs
  askdocs ingest notes.txt handbook.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	docs, err := rag.LoadDocuments(args)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	p, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}

	stats, err := p.ingestor.Ingest(cmd.Context(), docs)
	if err != nil {
		return fmt.Errorf("ingesting: %w", err)
	}

	if !quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Ingested %d documents (%d chunks, %d vectors) into %q\n",
			stats.Documents, stats.Chunks, stats.Vectors, p.cfg.IndexName)
	}
	return nil
}
