package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
	"github.com/custodia-labs/profanity/internal/core/ports/driving"
	"github.com/custodia-labs/profanity/internal/logger"
)

// Ensure ReferenceService implements the interface.
var _ driving.ReferenceService = (*ReferenceService)(nil)

// defaultImportBatchSize bounds the texts sent per embedding request.
const defaultImportBatchSize = 32

// ReferenceService loads reference texts into the local vector index.
type ReferenceService struct {
	store     driven.ReferenceStore
	embedder  driven.EmbeddingService
	batchSize int
	now       func() time.Time
}

// NewReferenceService creates a new reference service.
// The embedder may be nil, in which case every call fails with
// domain.ErrEmbeddingUnavailable.
func NewReferenceService(store driven.ReferenceStore, embedder driven.EmbeddingService) *ReferenceService {
	return &ReferenceService{
		store:     store,
		embedder:  embedder,
		batchSize: defaultImportBatchSize,
		now:       time.Now,
	}
}

// Import embeds and stores the given texts. Returns the number stored.
// Blank lines are skipped and duplicates are stored once.
func (s *ReferenceService) Import(ctx context.Context, texts []string) (int, error) {
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Reference Import")

	cleaned := lo.Uniq(lo.FilterMap(texts, func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	}))
	if len(cleaned) == 0 {
		return 0, nil
	}

	model := s.embedder.ModelName()
	stored := 0

	for i, batch := range lo.Chunk(cleaned, s.batchSize) {
		embeddings, err := s.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return stored, fmt.Errorf("embed batch %d: %w", i, err)
		}
		if len(embeddings) != len(batch) {
			return stored, fmt.Errorf("embed batch %d: got %d embeddings for %d texts",
				i, len(embeddings), len(batch))
		}

		entries := make([]domain.ReferenceEntry, len(batch))
		for j, text := range batch {
			entries[j] = domain.ReferenceEntry{
				ID:        uuid.NewString(),
				Text:      text,
				Embedding: embeddings[j],
				Model:     model,
				CreatedAt: s.now(),
			}
		}

		if err := s.store.SaveReferences(ctx, entries); err != nil {
			return stored, fmt.Errorf("save batch %d: %w", i, err)
		}
		stored += len(entries)
		logger.Debug("Stored %d/%d references", stored, len(cleaned))
	}

	return stored, nil
}

// Count returns the number of stored entries for the active embedding model.
func (s *ReferenceService) Count(ctx context.Context) (int, error) {
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}
	return s.store.CountReferences(ctx, s.embedder.ModelName())
}
