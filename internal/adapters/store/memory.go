package store

import (
	"context"
	"sort"
	"sync"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// InMemoryStore keeps summaries for the lifetime of the process.
type InMemoryStore struct {
	mu        sync.RWMutex
	summaries map[string]entities.Summary
}

// NewInMemoryStore creates a new in-memory summary store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		summaries: make(map[string]entities.Summary),
	}
}

// Save stores a copy of the summary.
func (s *InMemoryStore) Save(ctx context.Context, sum *entities.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[sum.ID] = *sum
	return nil
}

// Get returns one summary or ports.ErrNotFound.
func (s *InMemoryStore) Get(ctx context.Context, id string) (*entities.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, ok := s.summaries[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &sum, nil
}

// List returns summaries newest first.
func (s *InMemoryStore) List(ctx context.Context, limit int) ([]entities.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]entities.Summary, 0, len(s.summaries))
	for _, sum := range s.summaries {
		results = append(results, sum)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Delete removes a summary.
func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.summaries[id]; !ok {
		return ports.ErrNotFound
	}
	delete(s.summaries, id)
	return nil
}

// Close is a no-op.
func (s *InMemoryStore) Close() error {
	return nil
}

// Count returns the number of stored summaries.
func (s *InMemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.summaries), nil
}
