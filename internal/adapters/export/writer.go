package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

// DirWriter implements ports.SummaryWriter by writing files into a directory.
type DirWriter struct {
	dir    string
	format Format
}

// NewDirWriter creates a writer for dir. An empty format means plain text.
func NewDirWriter(dir string, format Format) *DirWriter {
	if format == "" {
		format = FormatText
	}
	return &DirWriter{dir: dir, format: format}
}

// Write renders the summary and stores it as <name>_summary.<ext>.
func (w *DirWriter) Write(ctx context.Context, s *entities.Summary) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := Render(s, w.format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, DownloadName(filepath.Base(s.FileName), w.format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
