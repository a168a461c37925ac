// ABOUTME: CLI command to ask a question against the indexed corpus
// ABOUTME: Streams the generated answer to stdout token by token
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askCorpus string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the indexed documents",
		Long: `Ask a natural-language question against the indexed corpus.

The answer streams to stdout as it is generated.

Examples:
  askdocs ask "How do I configure the scheduler?"
  askdocs ask --corpus handbook "What is the leave policy?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askCorpus, "corpus", "", "Index name to query (defaults to the configured index)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}

	indexName := askCorpus
	if indexName == "" {
		indexName = p.cfg.IndexName
	}

	stream, err := p.querier.AskIndex(cmd.Context(), indexName, args[0])
	if err != nil {
		return fmt.Errorf("asking: %w", err)
	}
	if stream == nil {
		if !quiet {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No relevant documents found; nothing to answer from.")
		}
		return nil
	}

	out := cmd.OutOrStdout()
	for token := range stream.Tokens() {
		_, _ = fmt.Fprint(out, token)
	}
	_, _ = fmt.Fprintln(out)

	if err := stream.Err(); err != nil {
		return fmt.Errorf("completion aborted: %w", err)
	}
	return nil
}
