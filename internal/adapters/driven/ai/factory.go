// Package ai provides factory functions for creating the embedding and vector index adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/profanity/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/profanity/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/profanity/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/profanity/internal/adapters/driven/vector/local"
	"github.com/custodia-labs/profanity/internal/adapters/driven/vector/upstash"
	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult holds the adapters created for a vector backend.
type InitResult struct {
	VectorIndex      driven.VectorIndex
	EmbeddingService driven.EmbeddingService // Only set for the local backend.
	ReferenceStore   driven.ReferenceStore   // Only set for the local backend.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.VectorIndex != nil {
		// The local index owns its store and embedder.
		_ = r.VectorIndex.Close()
		return
	}
	if r.EmbeddingService != nil {
		_ = r.EmbeddingService.Close()
	}
	if r.ReferenceStore != nil {
		_ = r.ReferenceStore.Close()
	}
}

// CreateVectorIndex builds the vector index selected by settings.
// dataDir locates the SQLite reference store for the local backend;
// empty means the default location.
func CreateVectorIndex(settings *domain.AppSettings, dataDir string) (*InitResult, error) {
	switch settings.VectorIndex.Backend {
	case domain.VectorBackendUpstash:
		idx, err := upstash.New(upstash.Config{
			URL:               settings.VectorIndex.URL,
			Token:             settings.VectorIndex.Token,
			RequestsPerSecond: settings.VectorIndex.RequestsPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("%w. Set VECTOR_URL and VECTOR_TOKEN or run 'profanity settings vector'", err)
		}
		return &InitResult{VectorIndex: idx}, nil

	case domain.VectorBackendLocal:
		res, err := OpenReferenceCorpus(&settings.Embedding, dataDir)
		if err != nil {
			return nil, err
		}
		idx, err := local.New(res.ReferenceStore, res.EmbeddingService)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.VectorIndex = idx
		return res, nil

	default:
		return nil, fmt.Errorf("%w: vector backend %q", domain.ErrUnsupportedType, settings.VectorIndex.Backend)
	}
}

// OpenReferenceCorpus opens the reference store together with a validated embedding service.
func OpenReferenceCorpus(settings *domain.EmbeddingSettings, dataDir string) (*InitResult, error) {
	embedder, err := CreateAndValidateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: configure one with 'profanity settings embedding'",
			domain.ErrEmbeddingUnavailable)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		_ = embedder.Close()
		return nil, fmt.Errorf("open reference store: %w", err)
	}

	return &InitResult{
		EmbeddingService: embedder,
		ReferenceStore:   store.ReferenceStore(),
	}, nil
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns nil without error when no provider is configured.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: embedding provider %s", domain.ErrUnsupportedType, settings.Provider)
	}
}
