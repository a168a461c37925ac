// ABOUTME: Loads corpus documents from files and directories
// ABOUTME: Accepts .txt and .md files; directories are walked recursively
package rag

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/askdocs/askdocs/internal/models"
)

// LoadDocuments reads documents from the given paths. A directory is
// walked recursively; only .txt and .md files are picked up. A file
// path is read regardless of extension. The document source is the
// cleaned path.
func LoadDocuments(paths []string) ([]models.Document, error) {
	var docs []models.Document
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		if !info.IsDir() {
			doc, err := loadFile(p)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !hasCorpusExt(path) {
				return nil
			}
			doc, err := loadFile(path)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", p, err)
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found")
	}
	return docs, nil
}

func loadFile(path string) (models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return models.NewDocument(string(data), filepath.Clean(path)), nil
}

func hasCorpusExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}
