// Package chunkers provides the text chunking strategies used before vector lookup.
package chunkers

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.ChunkerPipeline = (*Pipeline)(nil)

// Pipeline runs several chunkers concurrently over the same text.
// Output keeps registration order regardless of completion order.
type Pipeline struct {
	chunkers []driven.Chunker
}

// NewPipeline creates a new chunking pipeline with the given chunkers.
func NewPipeline(chunkers ...driven.Chunker) *Pipeline {
	return &Pipeline{
		chunkers: chunkers,
	}
}

// Chunk runs every chunker and concatenates their output.
// The first chunker error cancels the others and is returned.
func (p *Pipeline) Chunk(ctx context.Context, text string) ([]domain.Chunk, error) {
	results := make([][]domain.Chunk, len(p.chunkers))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range p.chunkers {
		g.Go(func() error {
			chunks, err := c.Chunk(gctx, text)
			if err != nil {
				return fmt.Errorf("chunker %s: %w", c.Name(), err)
			}
			results[i] = chunks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.Flatten(results), nil
}

// Add appends a chunker to the pipeline.
func (p *Pipeline) Add(c driven.Chunker) {
	p.chunkers = append(p.chunkers, c)
}

// Len returns the number of chunkers in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.chunkers)
}

// Names returns the chunker names in registration order.
func (p *Pipeline) Names() []string {
	return lo.Map(p.chunkers, func(c driven.Chunker, _ int) string {
		return c.Name()
	})
}
