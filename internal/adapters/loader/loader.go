// Package loader provides document loading adapters.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

// DefaultMaxBytes caps the size of a file read from disk.
const DefaultMaxBytes = 50 << 20

// FileLoader implements ports.DocumentLoader for PDFs on the local file system.
type FileLoader struct {
	maxBytes   int64
	extensions []string
}

// NewFileLoader creates a loader. maxBytes <= 0 uses DefaultMaxBytes.
func NewFileLoader(maxBytes int64) *FileLoader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &FileLoader{
		maxBytes:   maxBytes,
		extensions: []string{".pdf"},
	}
}

// Load reads the file at path into an upload.
func (l *FileLoader) Load(ctx context.Context, path string) (*entities.Upload, error) {
	if !l.supports(path) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > l.maxBytes {
		return nil, fmt.Errorf("%s is %d bytes, limit is %d", filepath.Base(path), info.Size(), l.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(file, l.maxBytes+1))
	if err != nil {
		return nil, err
	}

	return &entities.Upload{
		Name: filepath.Base(path),
		Data: data,
	}, nil
}

// SupportedExtensions returns file extensions this loader handles.
func (l *FileLoader) SupportedExtensions() []string {
	return l.extensions
}

func (l *FileLoader) supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range l.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
