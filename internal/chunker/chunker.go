// ABOUTME: Splitter cuts documents into fixed-size chunks for embedding
// ABOUTME: Character windows with optional overlap, offsets kept per chunk
package chunker

import (
	"errors"
	"strings"

	"github.com/askdocs/askdocs/internal/models"
)

// Splitter splits document text into fixed-size chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter creates a splitter with the given window size and
// overlap. Overlap must be smaller than the chunk size.
func NewSplitter(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, errors.New("chunk size must be positive")
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, errors.New("overlap must be >= 0 and smaller than chunk size")
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split produces the ordered chunk sequence for a document. Window
// size, overlap, and offsets count characters, not bytes, so
// multibyte text is never cut mid-rune. Empty or whitespace-only
// content yields no chunks.
func (s *Splitter) Split(doc models.Document) []models.Chunk {
	if strings.TrimSpace(doc.Content) == "" {
		return nil
	}
	runes := []rune(doc.Content)

	step := s.chunkSize - s.overlap
	var chunks []models.Chunk
	for start, index := 0, 0; start < len(runes); start, index = start+step, index+1 {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, models.Chunk{
			Text:   string(runes[start:end]),
			Index:  index,
			Source: doc.Source(),
			Start:  start,
			End:    end,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}
