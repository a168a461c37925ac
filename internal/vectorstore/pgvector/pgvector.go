// ABOUTME: Postgres/pgvector backend for the vector index interface
// ABOUTME: One table per index; cosine search via the <=> operator
package pgvector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvec "github.com/pgvector/pgvector-go"

	"github.com/askdocs/askdocs/internal/models"
	"github.com/askdocs/askdocs/internal/vectorstore"
)

var _ vectorstore.Index = (*Store)(nil)

// Index tables share a prefix so ListIndexes can find them without a
// registry table.
const tablePrefix = "askdocs_"

// conn is the slice of the pgx pool API the store uses. Satisfied by
// *pgxpool.Pool.
type conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults
}

// Store is a pgvector-backed index client.
type Store struct {
	pool *pgxpool.Pool
	db   conn
}

// New connects to Postgres and verifies the connection.
func New(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{pool: pool, db: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// ListIndexes returns the names of all index tables.
func (s *Store) ListIndexes(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_name LIKE $1`,
		tablePrefix+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("listing index tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, strings.TrimPrefix(table, tablePrefix))
	}
	return names, rows.Err()
}

// CreateIndex creates the extension and the index table. The metric
// argument is accepted for interface parity; search always uses the
// cosine operator.
func (s *Store) CreateIndex(ctx context.Context, name string, dimension int, metric string) error {
	if _, err := s.db.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("creating vector extension: %w", err)
	}
	ddl := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			embedding VECTOR(%d),
			metadata JSONB NOT NULL DEFAULT '{}'
		)`, tableName(name), dimension)
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating index table %q: %w", name, err)
	}
	return nil
}

// EnsureIndex creates the table if missing. CREATE TABLE is
// synchronous in Postgres, so there is no readiness wait here.
func (s *Store) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	return s.CreateIndex(ctx, name, dimension, metric)
}

// Upsert inserts or overwrites records by id in a single batch.
func (s *Store) Upsert(ctx context.Context, name string, records []models.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	sql := fmt.Sprintf(
		`INSERT INTO %s (id, embedding, metadata) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE
		 SET embedding = EXCLUDED.embedding, metadata = EXCLUDED.metadata`,
		tableName(name))

	batch := &pgx.Batch{}
	for _, rec := range records {
		metadata, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata for %q: %w", rec.ID, err)
		}
		batch.Queue(sql, rec.ID, pgvec.NewVector(rec.Values), metadata)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()
	for i := range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upserting record %d: %w", i, err)
		}
	}
	return nil
}

// Query runs a cosine similarity search. Score is 1 - distance so
// higher means closer, matching the Qdrant backend.
func (s *Store) Query(ctx context.Context, name string, vector []float32, topK int) ([]models.QueryMatch, error) {
	sql := fmt.Sprintf(
		`SELECT id, metadata, 1 - (embedding <=> $1) AS score
		 FROM %s
		 ORDER BY embedding <=> $1
		 LIMIT $2`, tableName(name))

	rows, err := s.db.Query(ctx, sql, pgvec.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("searching index %q: %w", name, err)
	}
	defer rows.Close()

	var matches []models.QueryMatch
	for rows.Next() {
		var (
			id       string
			raw      []byte
			score    float64
			metadata map[string]string
		)
		if err := rows.Scan(&id, &raw, &score); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		if err := json.Unmarshal(raw, &metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata for %q: %w", id, err)
		}
		matches = append(matches, models.QueryMatch{ID: id, Score: score, Metadata: metadata})
	}
	return matches, rows.Err()
}

// tableName maps an index name to a safe SQL identifier.
func tableName(name string) string {
	var b strings.Builder
	b.WriteString(tablePrefix)
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
