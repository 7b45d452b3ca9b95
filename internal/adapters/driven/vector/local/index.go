// Package local provides a vector index that embeds queries with a local or
// cloud embedding service and searches a stored reference corpus by cosine similarity.
package local

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a brute-force nearest-neighbour index over a ReferenceStore.
// The corpus is loaded lazily and reloaded when the stored count changes.
type Index struct {
	store    driven.ReferenceStore
	embedder driven.EmbeddingService

	mu      sync.RWMutex
	entries []domain.ReferenceEntry
	norms   []float64
	loaded  bool
}

// New creates a local index. Both collaborators are required.
func New(store driven.ReferenceStore, embedder driven.EmbeddingService) (*Index, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: local index needs a reference store", domain.ErrVectorIndexUnavailable)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: local index needs an embedding service", domain.ErrEmbeddingUnavailable)
	}
	return &Index{store: store, embedder: embedder}, nil
}

// Name returns the backend name.
func (i *Index) Name() string {
	return "local"
}

// Query embeds text and returns the most similar reference entry.
// Returns nil when the corpus is empty.
func (i *Index) Query(ctx context.Context, text string) (*domain.VectorMatch, error) {
	if err := i.refresh(ctx); err != nil {
		return nil, err
	}

	vec, err := i.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: local: embed query: %w", domain.ErrExternalService, err)
	}
	qNorm := norm(vec)

	i.mu.RLock()
	defer i.mu.RUnlock()

	var best *domain.VectorMatch
	for j, e := range i.entries {
		score := cosine(vec, qNorm, e.Embedding, i.norms[j])
		if best == nil || score > best.Score {
			best = &domain.VectorMatch{Score: score, Text: e.Text}
		}
	}
	return best, nil
}

// refresh reloads the corpus if it was never loaded or its size changed.
func (i *Index) refresh(ctx context.Context) error {
	model := i.embedder.ModelName()

	count, err := i.store.CountReferences(ctx, model)
	if err != nil {
		return fmt.Errorf("%w: local: count references: %w", domain.ErrExternalService, err)
	}

	i.mu.RLock()
	fresh := i.loaded && len(i.entries) == count
	i.mu.RUnlock()
	if fresh {
		return nil
	}

	entries, err := i.store.ListReferences(ctx, model)
	if err != nil {
		return fmt.Errorf("%w: local: list references: %w", domain.ErrExternalService, err)
	}

	norms := make([]float64, len(entries))
	for j, e := range entries {
		norms[j] = norm(e.Embedding)
	}

	i.mu.Lock()
	i.entries = entries
	i.norms = norms
	i.loaded = true
	i.mu.Unlock()
	return nil
}

// Close releases the underlying store and embedder.
func (i *Index) Close() error {
	embedErr := i.embedder.Close()
	if err := i.store.Close(); err != nil {
		return err
	}
	return embedErr
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns the cosine similarity of a and b, or 0 when the vectors
// differ in length or either is zero.
func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float64 {
	if len(a) != len(b) || aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for k := range a {
		dot += float64(a[k]) * float64(b[k])
	}
	return dot / (aNorm * bNorm)
}
