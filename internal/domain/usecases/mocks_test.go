package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// mockLLM implements ports.LLMService for testing
type mockLLM struct {
	mu       sync.Mutex
	requests []ports.CompletionRequest
	// failOn makes the n-th call (1-based) fail with err.
	failOn int
	err    error
}

func (m *mockLLM) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.failOn > 0 && len(m.requests) == m.failOn {
		return "", m.err
	}
	return fmt.Sprintf("summary-%d", len(m.requests)), nil
}

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// mockParser implements ports.DocumentParser for testing
type mockParser struct {
	doc    *entities.Document
	err    error
	called int
}

func (m *mockParser) Parse(ctx context.Context, data []byte, filename string) (*entities.Document, error) {
	m.called++
	if m.err != nil {
		return nil, m.err
	}
	doc := *m.doc
	doc.Name = filename
	return &doc, nil
}

func (m *mockParser) SupportedFormats() []string {
	return []string{"pdf"}
}

// mockStore implements ports.SummaryStore for testing
type mockStore struct {
	mu      sync.Mutex
	saved   []entities.Summary
	saveErr error
}

func (m *mockStore) Save(ctx context.Context, s *entities.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *s)
	return nil
}

func (m *mockStore) Get(ctx context.Context, id string) (*entities.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.saved {
		if m.saved[i].ID == id {
			s := m.saved[i]
			return &s, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (m *mockStore) List(ctx context.Context, limit int) ([]entities.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entities.Summary(nil), m.saved...), nil
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockStore) Count(ctx context.Context) (int, error) {
	return m.count(), nil
}

func (m *mockStore) Close() error {
	return nil
}

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

// mockLoader implements ports.DocumentLoader for testing
type mockLoader struct {
	err error
}

func (m *mockLoader) Load(ctx context.Context, path string) (*entities.Upload, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entities.Upload{Name: path, Data: []byte("%PDF-1.4")}, nil
}

func (m *mockLoader) SupportedExtensions() []string {
	return []string{".pdf"}
}

// mockWriter implements ports.SummaryWriter for testing
type mockWriter struct {
	mu      sync.Mutex
	written []string
}

func (m *mockWriter) Write(ctx context.Context, s *entities.Summary) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, s.FileName)
	return "/out/" + s.FileName + ".txt", nil
}

func (m *mockWriter) files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.written...)
}
