// Package semantic provides the overlapping multi-word chunker.
package semantic

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// Name is the registry name of the semantic chunker.
const Name = "semantic"

// DefaultChunkSize is the default target number of characters per chunk.
const DefaultChunkSize = domain.DefaultSemanticChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultSemanticChunkOverlap

// separator joins words inside a chunk.
const separator = " "

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker splits text into overlapping fragments of roughly chunkSize
// characters. Boundaries only fall on whitespace, so words are never cut.
// Phrases whose meaning spans several words are matched as a unit.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the semantic chunker.
type Option func(*Chunker)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new semantic chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 2
	}

	return c
}

// Name returns the chunker name.
func (c *Chunker) Name() string {
	return Name
}

// Chunk splits text into overlapping word-aligned fragments.
// Single-word text yields no chunks; the word chunker already covers it.
func (c *Chunker) Chunk(ctx context.Context, text string) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := strings.Fields(text)
	if len(words) <= 1 {
		return nil, nil
	}

	fragments := c.merge(words)
	chunks := make([]domain.Chunk, len(fragments))
	for i, f := range fragments {
		chunks[i] = domain.Chunk{
			Text:     f,
			Origin:   domain.ChunkOriginSemantic,
			Position: i,
		}
	}
	return chunks, nil
}

// merge packs words into fragments no longer than chunkSize where possible.
// After each emitted fragment, leading words are dropped until the carried-over
// text is within overlap and the next word fits. A word longer than chunkSize
// becomes a fragment of its own.
func (c *Chunker) merge(words []string) []string {
	sepLen := utf8.RuneCountInString(separator)

	var (
		fragments []string
		current   []string
		total     int
	)

	// joined is the length current would have with one more word appended.
	joined := func(n int) int {
		if len(current) > 0 {
			return total + n + sepLen
		}
		return total + n
	}

	for _, w := range words {
		n := utf8.RuneCountInString(w)

		if joined(n) > c.chunkSize && len(current) > 0 {
			fragments = append(fragments, strings.Join(current, separator))

			for total > c.overlap || (total > 0 && joined(n) > c.chunkSize) {
				drop := utf8.RuneCountInString(current[0])
				if len(current) > 1 {
					drop += sepLen
				}
				total -= drop
				current = current[1:]
			}
		}

		total = joined(n)
		current = append(current, w)
	}

	if len(current) > 0 {
		fragments = append(fragments, strings.Join(current, separator))
	}

	return fragments
}
