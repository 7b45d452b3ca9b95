package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// Ensure ReferenceStore implements the interface.
var _ driven.ReferenceStore = (*ReferenceStore)(nil)

type referenceKey struct {
	model string
	text  string
}

// ReferenceStore is an in-memory implementation of driven.ReferenceStore.
// Used for testing and for a throwaway local index.
type ReferenceStore struct {
	mu      sync.RWMutex
	entries map[referenceKey]domain.ReferenceEntry
}

// NewReferenceStore creates a new in-memory reference store.
func NewReferenceStore() *ReferenceStore {
	return &ReferenceStore{
		entries: make(map[referenceKey]domain.ReferenceEntry),
	}
}

// SaveReferences inserts entries, replacing existing ones with the same model and text.
func (s *ReferenceStore) SaveReferences(_ context.Context, entries []domain.ReferenceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		key := referenceKey{model: e.Model, text: e.Text}
		if existing, ok := s.entries[key]; ok {
			e.ID = existing.ID
		}
		e.Embedding = append([]float32(nil), e.Embedding...)
		s.entries[key] = e
	}
	return nil
}

// ListReferences returns all entries for the given model, oldest first.
func (s *ReferenceStore) ListReferences(_ context.Context, model string) ([]domain.ReferenceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.ReferenceEntry
	for key, e := range s.entries {
		if key.model == model {
			result = append(result, e)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// CountReferences returns the number of entries for the given model.
func (s *ReferenceStore) CountReferences(_ context.Context, model string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for key := range s.entries {
		if key.model == model {
			count++
		}
	}
	return count, nil
}

// Close is a no-op for the memory store.
func (s *ReferenceStore) Close() error {
	return nil
}
