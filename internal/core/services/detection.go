package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
	"github.com/custodia-labs/profanity/internal/core/ports/driving"
	"github.com/custodia-labs/profanity/internal/logger"
)

// Ensure DetectionService implements the interface.
var _ driving.DetectionService = (*DetectionService)(nil)

// detectionState is one immutable configuration snapshot.
// A request loads it once and uses it throughout.
type detectionState struct {
	settings  domain.DetectionSettings
	whitelist domain.Whitelist
	pipeline  driven.ChunkerPipeline
}

// DetectionService scores messages against the vector index.
type DetectionService struct {
	index driven.VectorIndex
	state atomic.Pointer[detectionState]
}

// NewDetectionService creates a new detection service.
// The pipeline must have been built from the same settings.
func NewDetectionService(
	index driven.VectorIndex,
	pipeline driven.ChunkerPipeline,
	settings domain.DetectionSettings,
) *DetectionService {
	s := &DetectionService{index: index}
	s.Reconfigure(settings, pipeline)
	return s
}

// Reconfigure atomically replaces the detection settings and chunker pipeline.
// Requests already in flight finish with the previous snapshot.
func (s *DetectionService) Reconfigure(settings domain.DetectionSettings, pipeline driven.ChunkerPipeline) {
	s.state.Store(&detectionState{
		settings:  settings,
		whitelist: settings.WhitelistSet(),
		pipeline:  pipeline,
	})
}

// Settings returns the active detection settings.
func (s *DetectionService) Settings() domain.DetectionSettings {
	return s.state.Load().settings
}

// Detect validates, sanitises, chunks and scores the message.
func (s *DetectionService) Detect(ctx context.Context, message string) (*domain.Verdict, error) {
	logger.Section("Detection")

	message, err := domain.NormalizeMessage(message)
	if err != nil {
		return nil, err
	}

	st := s.state.Load()
	log := logger.FromContext(ctx)

	sanitized := Sanitize(message, st.whitelist)
	if sanitized == "" {
		log.Debug("message fully whitelisted")
		verdict := domain.CleanVerdict(0)
		return &verdict, nil
	}

	chunks, err := st.pipeline.Chunk(ctx, sanitized)
	if err != nil {
		return nil, fmt.Errorf("chunk message: %w", err)
	}
	log.Debug("chunked message", zap.Int("chunks", len(chunks)))

	matches, err := s.queryAll(ctx, st.settings, chunks)
	if err != nil {
		return nil, err
	}

	verdict := Decide(matches, st.settings.Threshold)
	log.Debug("verdict",
		zap.Bool("is_profanity", verdict.IsProfanity),
		zap.Float64("score", verdict.Score),
	)
	return &verdict, nil
}

// queryAll issues one query per chunk with bounded concurrency.
// The first failure cancels the remaining queries.
func (s *DetectionService) queryAll(
	ctx context.Context, settings domain.DetectionSettings, chunks []domain.Chunk,
) ([]domain.ChunkMatch, error) {
	limit := settings.MaxConcurrency
	if limit <= 0 {
		limit = domain.DefaultMaxConcurrency
	}
	timeout := settings.QueryTimeout
	if timeout <= 0 {
		timeout = domain.DefaultQueryTimeout
	}

	matches := make([]domain.ChunkMatch, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, chunk := range chunks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			match, err := s.query(gctx, timeout, chunk.Text)
			if err != nil {
				return err
			}
			matches[i] = domain.ChunkMatch{Chunk: chunk, Match: match}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// query runs a single lookup under its own deadline.
func (s *DetectionService) query(ctx context.Context, timeout time.Duration, text string) (*domain.VectorMatch, error) {
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	match, err := s.index.Query(qctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrExternalService) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrExternalService, s.index.Name(), err)
	}
	return match, nil
}
