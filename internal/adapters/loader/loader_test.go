package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoader_LoadPDF(t *testing.T) {
	dir, _ := os.MkdirTemp("", "loader-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "week1.pdf")
	os.WriteFile(path, []byte("%PDF-1.4 body"), 0644)

	loader := NewFileLoader(0)
	upload, err := loader.Load(context.Background(), path)

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(upload.Data) != "%PDF-1.4 body" {
		t.Errorf("unexpected content: %s", upload.Data)
	}
	if upload.Name != "week1.pdf" {
		t.Errorf("unexpected name: %s", upload.Name)
	}
}

func TestFileLoader_UppercaseExtension(t *testing.T) {
	dir, _ := os.MkdirTemp("", "loader-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "SCAN.PDF")
	os.WriteFile(path, []byte("%PDF-"), 0644)

	if _, err := NewFileLoader(0).Load(context.Background(), path); err != nil {
		t.Errorf("uppercase extension should load: %v", err)
	}
}

func TestFileLoader_RejectsOtherExtensions(t *testing.T) {
	dir, _ := os.MkdirTemp("", "loader-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "notes.txt")
	os.WriteFile(path, []byte("text"), 0644)

	if _, err := NewFileLoader(0).Load(context.Background(), path); err == nil {
		t.Error("should reject .txt files")
	}
}

func TestFileLoader_SizeLimit(t *testing.T) {
	dir, _ := os.MkdirTemp("", "loader-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "big.pdf")
	os.WriteFile(path, make([]byte, 2048), 0644)

	if _, err := NewFileLoader(1024).Load(context.Background(), path); err == nil {
		t.Error("should reject files above the limit")
	}
}

func TestFileLoader_SupportedExtensions(t *testing.T) {
	exts := NewFileLoader(0).SupportedExtensions()
	if len(exts) != 1 || exts[0] != ".pdf" {
		t.Errorf("unexpected extensions: %v", exts)
	}
}

func TestLoader_NonexistentFile(t *testing.T) {
	_, err := NewFileLoader(0).Load(context.Background(), "/nonexistent/file.pdf")
	if err == nil {
		t.Error("should error on nonexistent file")
	}
}
