// ABOUTME: Core data types for the RAG pipeline
// ABOUTME: Defines Document, Chunk, VectorRecord, and QueryMatch
package models

import "fmt"

// Document is a single source text loaded into the system.
// Immutable once read; Source identifies where it came from
// (file path or URL) and keys the deterministic vector ids.
type Document struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Source returns the document's source identifier, or "" if unset.
func (d Document) Source() string {
	return d.Metadata["source"]
}

// NewDocument creates a document with the given content and source.
func NewDocument(content, source string) Document {
	return Document{
		Content:  content,
		Metadata: map[string]string{"source": source},
	}
}

// Chunk is a bounded-size slice of a document's text, the unit of
// embedding and storage. Start and End are byte offsets into the
// original document content.
type Chunk struct {
	Text   string `json:"text"`
	Index  int    `json:"index"`
	Source string `json:"source"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// VectorRecord is what gets upserted into the vector index. ID is
// deterministic (source + chunk index) so re-ingesting the same
// document overwrites rather than duplicates.
type VectorRecord struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata"`
}

// QueryMatch is one similarity-search hit. Metadata carries the chunk
// text under "text" plus whatever was stored at ingest time.
type QueryMatch struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

// Text returns the matched chunk's text, or "" if missing.
func (m QueryMatch) Text() string {
	return m.Metadata["text"]
}

// VectorID derives the deterministic record id for a chunk.
func VectorID(source string, index int) string {
	return fmt.Sprintf("%s_%d", source, index)
}

// RecordFromChunk assembles a VectorRecord for a chunk and its vector.
func RecordFromChunk(ch Chunk, vector []float32) VectorRecord {
	return VectorRecord{
		ID:     VectorID(ch.Source, ch.Index),
		Values: vector,
		Metadata: map[string]string{
			"text":   ch.Text,
			"source": ch.Source,
			"loc":    fmt.Sprintf("%d-%d", ch.Start, ch.End),
		},
	}
}
