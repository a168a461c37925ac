// ABOUTME: CLI command to run the HTTP server
// ABOUTME: Streams answers over /api/ask; graceful shutdown on signals
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs/internal/server"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP question-answering server",
		Long: `Start the HTTP server.

Endpoints:
  POST /api/ask     {"question": "...", "corpus": "..."} → streamed answer
  POST /api/ingest  {"documents": [{"content": "...", "source": "..."}]}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to HTTP_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = p.cfg.HTTPAddr
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.New(p.querier, p.ingestor, p.cfg.IndexName, p.cfg.Debug).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("askdocs HTTP server listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
