package driven

import (
	"context"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// VectorIndex provides nearest-neighbour lookup against the reference corpus.
// Implementations hold no per-query state and perform no retries.
type VectorIndex interface {
	// Query sends exactly one top-1 request for text.
	// Returns nil with no error when the index has no neighbour.
	Query(ctx context.Context, text string) (*domain.VectorMatch, error)

	// Name returns the backend name for logging.
	Name() string

	// Close releases resources.
	Close() error
}
