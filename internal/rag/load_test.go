// ABOUTME: Tests for corpus loading from files and directories
// ABOUTME: Verifies extension filtering, recursion, and missing paths
package rag

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDocuments_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "note.txt", "hello corpus")

	docs, err := LoadDocuments([]string{path})
	if err != nil {
		t.Fatalf("LoadDocuments() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Content != "hello corpus" {
		t.Errorf("Content = %q", docs[0].Content)
	}
	if docs[0].Source() != filepath.Clean(path) {
		t.Errorf("Source = %q, want %q", docs[0].Source(), path)
	}
}

func TestLoadDocuments_DirectoryRecursesAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "sub/b.md", "b")
	writeFile(t, dir, "sub/skip.pdf", "binary")
	writeFile(t, dir, "skip.json", "{}")

	docs, err := LoadDocuments([]string{dir})
	if err != nil {
		t.Fatalf("LoadDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
}

func TestLoadDocuments_MissingPath(t *testing.T) {
	if _, err := LoadDocuments([]string{"/does/not/exist"}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestLoadDocuments_EmptyDirectory(t *testing.T) {
	if _, err := LoadDocuments([]string{t.TempDir()}); err == nil {
		t.Error("expected error when no documents are found")
	}
}
