// ABOUTME: Builds the augmented completion prompt from retrieved chunks
// ABOUTME: Context blob concatenation plus a source-citation instruction
package rag

import (
	"strings"

	"github.com/askdocs/askdocs/internal/models"
)

// BuildContext concatenates the matched chunks' text into one blob,
// in retrieval order.
func BuildContext(matches []models.QueryMatch) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if text := m.Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt assembles the question and retrieved context into the
// prompt sent to the completion model.
func BuildPrompt(question string, matches []models.QueryMatch) string {
	var b strings.Builder
	b.WriteString("Answer the question using the context below.\n\n")
	b.WriteString("Context:\n")
	b.WriteString(BuildContext(matches))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nIf you know the source URL for the information you use, cite it in your answer.")
	return b.String()
}
