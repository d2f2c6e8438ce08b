// Package ports defines interfaces for external dependencies.
// Clean Architecture: usecases depend on these abstractions, not concrete implementations.
// Adapters implement these interfaces.
package ports

import (
	"context"
	"errors"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// CompletionRequest is a single-turn chat completion call.
type CompletionRequest struct {
	APIKey      string
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// LLMService generates text from a language model.
// Single Responsibility: one prompt in, one completion out.
type LLMService interface {
	// Complete sends the prompt as a single user message and returns the completion text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// DocumentParser extracts text from binary document formats.
type DocumentParser interface {
	// Parse extracts the text content of the document bytes.
	Parse(ctx context.Context, data []byte, filename string) (*entities.Document, error)

	// SupportedFormats returns formats this parser handles (e.g. "pdf").
	SupportedFormats() []string
}

// DocumentLoader reads documents from the local file system.
type DocumentLoader interface {
	// Load reads the file at path.
	Load(ctx context.Context, path string) (*entities.Upload, error)

	// SupportedExtensions returns file extensions this loader handles.
	SupportedExtensions() []string
}

// SummaryWriter writes a finished summary somewhere durable and returns its location.
type SummaryWriter interface {
	Write(ctx context.Context, s *entities.Summary) (string, error)
}

// SummaryStore persists finished summaries.
type SummaryStore interface {
	Save(ctx context.Context, s *entities.Summary) error
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*entities.Summary, error)
	// List returns summaries newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]entities.Summary, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
