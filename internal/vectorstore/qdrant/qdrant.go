// ABOUTME: Qdrant REST backend for the vector index interface
// ABOUTME: Collections map to indexes; record ids are kept in the payload
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/askdocs/askdocs/internal/models"
	"github.com/askdocs/askdocs/internal/util"
	"github.com/askdocs/askdocs/internal/vectorstore"
)

var _ vectorstore.Index = (*Store)(nil)

// Qdrant point ids must be UUIDs or unsigned ints, so the
// deterministic "<source>_<index>" id lives in the payload and the
// point id is a UUID derived from it. Same input, same point.
var pointNamespace = uuid.MustParse("8c1f93a4-2f6e-4b5d-9a47-6b1a97f1de00")

const payloadIDKey = "_id"

// Config holds connection settings for a Qdrant server.
type Config struct {
	URL          string
	APIKey       string
	Timeout      time.Duration
	ReadyTimeout time.Duration
}

// Store is a minimal REST client to Qdrant.
type Store struct {
	url          string
	apiKey       string
	readyTimeout time.Duration
	client       *http.Client
}

// New creates a Qdrant-backed index client.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	readyTimeout := cfg.ReadyTimeout
	if readyTimeout == 0 {
		readyTimeout = 30 * time.Second
	}
	return &Store{
		url:          cfg.URL,
		apiKey:       cfg.APIKey,
		readyTimeout: readyTimeout,
		client:       &http.Client{Timeout: timeout},
	}
}

// ListIndexes returns the names of all collections.
func (s *Store) ListIndexes(ctx context.Context) ([]string, error) {
	var resp struct {
		Result struct {
			Collections []struct {
				Name string `json:"name"`
			} `json:"collections"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodGet, s.url+"/collections", nil, &resp); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Result.Collections))
	for _, c := range resp.Result.Collections {
		names = append(names, c.Name)
	}
	return names, nil
}

// CreateIndex creates a collection with the given dimension and metric.
func (s *Store) CreateIndex(ctx context.Context, name string, dimension int, metric string) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": distanceName(metric),
		},
	}
	return s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, name), body, nil)
}

// EnsureIndex creates the collection if it does not exist, then polls
// its status until green. Polling is bounded; on timeout it returns
// nil and lets the first upsert surface any real failure.
func (s *Store) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	names, err := s.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("listing indexes: %w", err)
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}

	if err := s.CreateIndex(ctx, name, dimension, metric); err != nil {
		return fmt.Errorf("creating index %q: %w", name, err)
	}

	deadline := time.Now().Add(s.readyTimeout)
	for attempt := 1; time.Now().Before(deadline); attempt++ {
		ready, err := s.indexReady(ctx, name)
		if err == nil && ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(util.CalculateBackoff(200*time.Millisecond, attempt)):
		}
	}
	return nil
}

// Upsert writes records into the collection, overwriting by id.
func (s *Store) Upsert(ctx context.Context, name string, records []models.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	points := make([]map[string]any, len(records))
	for i, rec := range records {
		payload := make(map[string]any, len(rec.Metadata)+1)
		for k, v := range rec.Metadata {
			payload[k] = v
		}
		payload[payloadIDKey] = rec.ID
		points[i] = map[string]any{
			"id":      uuid.NewSHA1(pointNamespace, []byte(rec.ID)).String(),
			"vector":  rec.Values,
			"payload": payload,
		}
	}
	body := map[string]any{"points": points}
	return s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, name), body, nil)
}

// Query runs a similarity search and returns matches with payloads.
func (s *Store) Query(ctx context.Context, name string, vector []float32, topK int) ([]models.QueryMatch, error) {
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/search", s.url, name), req, &resp); err != nil {
		return nil, err
	}

	matches := make([]models.QueryMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		metadata := make(map[string]string, len(r.Payload))
		for k, v := range r.Payload {
			if str, ok := v.(string); ok && k != payloadIDKey {
				metadata[k] = str
			}
		}
		id, _ := r.Payload[payloadIDKey].(string)
		matches = append(matches, models.QueryMatch{
			ID:       id,
			Score:    r.Score,
			Metadata: metadata,
		})
	}
	return matches, nil
}

func (s *Store) indexReady(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Result struct {
			Status string `json:"status"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, name), nil, &resp); err != nil {
		return false, err
	}
	return resp.Result.Status == "green", nil
}

func (s *Store) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func distanceName(metric string) string {
	switch metric {
	case "euclidean", "l2":
		return "Euclid"
	case "dot", "dotproduct":
		return "Dot"
	default:
		return "Cosine"
	}
}
