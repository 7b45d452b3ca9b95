package driven

import (
	"context"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// ReferenceStore persists reference texts and their embeddings for the local vector index.
type ReferenceStore interface {
	// SaveReferences inserts or replaces entries keyed by text and model.
	SaveReferences(ctx context.Context, entries []domain.ReferenceEntry) error

	// ListReferences returns all entries embedded with the given model.
	ListReferences(ctx context.Context, model string) ([]domain.ReferenceEntry, error)

	// CountReferences returns the number of entries for the given model.
	CountReferences(ctx context.Context, model string) (int, error)

	// Close releases resources.
	Close() error
}
