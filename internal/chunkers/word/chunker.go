// Package word provides the word-granularity chunker.
package word

import (
	"context"
	"strings"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// Name is the registry name of the word chunker.
const Name = "word"

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker emits one chunk per whitespace-separated word, so a single
// offensive word is matched even inside otherwise benign text.
type Chunker struct{}

// New creates a word chunker.
func New() *Chunker {
	return &Chunker{}
}

// Name returns the chunker name.
func (c *Chunker) Name() string {
	return Name
}

// Chunk splits text on whitespace runs. Every word is covered exactly once, in order.
func (c *Chunker) Chunk(ctx context.Context, text string) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, len(words))
	for i, w := range words {
		chunks[i] = domain.Chunk{
			Text:     w,
			Origin:   domain.ChunkOriginWord,
			Position: i,
		}
	}
	return chunks, nil
}
