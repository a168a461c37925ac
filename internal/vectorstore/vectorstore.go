// ABOUTME: Index is the contract for external vector index services
// ABOUTME: Existence check, creation, batched upsert, and similarity search
package vectorstore

import (
	"context"

	"github.com/askdocs/askdocs/internal/models"
)

// Index abstracts a named vector collection held by an external
// service. Dimension mismatches are not validated locally; they
// surface as service errors at call time.
type Index interface {
	// ListIndexes returns the names of all existing indexes.
	ListIndexes(ctx context.Context) ([]string, error)

	// CreateIndex creates a named index with the given dimension and
	// similarity metric.
	CreateIndex(ctx context.Context, name string, dimension int, metric string) error

	// EnsureIndex creates the index if missing and waits, bounded,
	// for it to become ready. A slow index does not fail here; the
	// first operation against it surfaces the error instead.
	EnsureIndex(ctx context.Context, name string, dimension int, metric string) error

	// Upsert inserts or overwrites records by id.
	Upsert(ctx context.Context, name string, records []models.VectorRecord) error

	// Query returns the topK nearest records with their metadata.
	Query(ctx context.Context, name string, vector []float32, topK int) ([]models.QueryMatch, error)
}
