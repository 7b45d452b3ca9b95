package driven

import (
	"context"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// Chunker splits sanitised text into fragments for vector lookup.
type Chunker interface {
	// Name returns the chunker name for logging and configuration.
	Name() string

	// Chunk splits text into chunks. Empty text yields no chunks.
	Chunk(ctx context.Context, text string) ([]domain.Chunk, error)
}

// ChunkerPipeline runs several chunkers over the same text.
type ChunkerPipeline interface {
	// Chunk returns the combined chunks of every chunker in registration order.
	Chunk(ctx context.Context, text string) ([]domain.Chunk, error)
}
