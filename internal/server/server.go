// ABOUTME: HTTP surface for the RAG pipeline
// ABOUTME: Streamed /api/ask, /api/ingest, and /healthz handlers
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/askdocs/askdocs/internal/llm"
	"github.com/askdocs/askdocs/internal/models"
	"github.com/askdocs/askdocs/internal/rag"
)

// Asker answers a question against a named index.
type Asker interface {
	AskIndex(ctx context.Context, indexName, question string) (*llm.TokenStream, error)
}

// Ingester runs a corpus update.
type Ingester interface {
	Ingest(ctx context.Context, docs []models.Document) (rag.IngestStats, error)
}

// Server exposes the orchestrators over HTTP. Requests are
// independent flows with no shared mutable state.
type Server struct {
	asker        Asker
	ingester     Ingester
	defaultIndex string
	debug        bool
}

// New creates the HTTP server.
func New(asker Asker, ingester Ingester, defaultIndex string, debug bool) *Server {
	return &Server{
		asker:        asker,
		ingester:     ingester,
		defaultIndex: defaultIndex,
		debug:        debug,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	mux.HandleFunc("POST /api/ingest", s.handleIngest)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type askRequest struct {
	Question string `json:"question"`
	Corpus   string `json:"corpus"`
}

// handleAsk streams the answer token-by-token as text/plain. Zero
// retrieval matches respond 204: nothing to answer, not an error.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()[:8]

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}
	indexName := req.Corpus
	if indexName == "" {
		indexName = s.defaultIndex
	}

	stream, err := s.asker.AskIndex(r.Context(), indexName, req.Question)
	if err != nil {
		log.Printf("[%s] ask failed: %v", reqID, err)
		http.Error(w, "upstream error", http.StatusBadGateway)
		return
	}
	if stream == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Request-ID", reqID)
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for token := range stream.Tokens() {
		if _, err := fmt.Fprint(w, token); err != nil {
			// Client went away; drain so the producer can finish
			for range stream.Tokens() {
			}
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	if err := stream.Err(); err != nil {
		// Headers are sent, so the only honest signal left is an
		// abnormal connection close. A clean EOF would make the
		// truncated answer look complete.
		log.Printf("[%s] stream aborted: %v", reqID, err)
		panic(http.ErrAbortHandler)
	}
}

type ingestRequest struct {
	Documents []struct {
		Content string `json:"content"`
		Source  string `json:"source"`
	} `json:"documents"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()[:8]

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		http.Error(w, "documents are required", http.StatusBadRequest)
		return
	}

	docs := make([]models.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = models.NewDocument(d.Content, d.Source)
	}

	stats, err := s.ingester.Ingest(r.Context(), docs)
	if err != nil {
		log.Printf("[%s] ingest failed: %v", reqID, err)
		http.Error(w, "ingestion failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}
