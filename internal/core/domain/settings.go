package domain

import "time"

const unknownDescription = "Unknown"

// Detection defaults.
const (
	// DefaultThreshold is the exclusive lower bound a score must exceed to flag.
	DefaultThreshold = 0.86

	// DefaultSemanticChunkSize is the target semantic fragment size in characters.
	DefaultSemanticChunkSize = 25

	// DefaultSemanticChunkOverlap is the overlap between consecutive semantic fragments.
	DefaultSemanticChunkOverlap = 12

	// DefaultMaxConcurrency caps in-flight vector queries per request.
	DefaultMaxConcurrency = 16

	// DefaultQueryTimeout bounds a single vector query.
	DefaultQueryTimeout = 5 * time.Second
)

// DefaultWhitelist returns the built-in whitelisted words.
func DefaultWhitelist() []string {
	return []string{"swear"}
}

// VectorBackend identifies the vector index implementation.
type VectorBackend string

// Available vector backends.
const (
	// VectorBackendUpstash is the hosted Upstash Vector REST API.
	VectorBackendUpstash VectorBackend = "upstash"

	// VectorBackendLocal embeds chunks locally and searches a SQLite reference store.
	VectorBackendLocal VectorBackend = "local"
)

// IsValid returns true if the backend is recognised.
func (b VectorBackend) IsValid() bool {
	switch b {
	case VectorBackendUpstash, VectorBackendLocal:
		return true
	default:
		return false
	}
}

// RequiresEmbedding returns true if this backend needs an embedding provider.
func (b VectorBackend) RequiresEmbedding() bool {
	return b == VectorBackendLocal
}

// String returns the string representation.
func (b VectorBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b VectorBackend) Description() string {
	switch b {
	case VectorBackendUpstash:
		return "Upstash Vector (hosted)"
	case VectorBackendLocal:
		return "Local (embeddings + SQLite reference store)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// DetectionSettings holds the per-request detection parameters.
// A request reads one snapshot of these values and never observes a partial update.
type DetectionSettings struct {
	// Threshold is the exclusive lower bound a match score must exceed to flag.
	Threshold float64 `validate:"gte=-1,lte=1"`

	// Whitelist holds tokens removed before chunking.
	Whitelist []string

	// SemanticChunkSize is the target semantic fragment size in characters.
	SemanticChunkSize int `validate:"gt=0"`

	// SemanticChunkOverlap is the overlap between semantic fragments in characters.
	SemanticChunkOverlap int `validate:"gte=0,ltfield=SemanticChunkSize"`

	// MaxConcurrency caps in-flight vector queries per request.
	MaxConcurrency int `validate:"gt=0"`

	// QueryTimeout bounds a single vector query.
	QueryTimeout time.Duration `validate:"gt=0"`
}

// WhitelistSet returns the whitelist as a lookup set.
func (d DetectionSettings) WhitelistSet() Whitelist {
	return NewWhitelist(d.Whitelist...)
}

// VectorIndexSettings holds vector index configuration.
type VectorIndexSettings struct {
	// Backend selects the index implementation.
	Backend VectorBackend `validate:"oneof=upstash local"`

	// URL is the REST endpoint (for Upstash).
	URL string

	// Token is the bearer token (for Upstash).
	Token string

	// RequestsPerSecond limits outbound queries; zero disables the limit.
	RequestsPerSecond float64 `validate:"gte=0"`
}

// IsConfigured returns true if the backend has everything it needs to connect.
func (v VectorIndexSettings) IsConfigured() bool {
	switch v.Backend {
	case VectorBackendUpstash:
		return v.URL != "" && v.Token != ""
	case VectorBackendLocal:
		return true
	default:
		return false
	}
}

// EmbeddingSettings holds embedding provider configuration.
// Only used by the local vector backend.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ServerSettings holds HTTP listener configuration.
type ServerSettings struct {
	Host string
	Port int `validate:"gte=1,lte=65535"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Detection holds threshold, whitelist and chunking settings.
	Detection DetectionSettings

	// VectorIndex holds vector index settings.
	VectorIndex VectorIndexSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Server holds HTTP server settings.
	Server ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The vector index credentials are left empty and must come from
// config.toml or VECTOR_URL / VECTOR_TOKEN.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Detection: DefaultDetectionSettings(),
		VectorIndex: VectorIndexSettings{
			Backend: VectorBackendUpstash,
		},
		// Embedding is left unconfigured - only the local backend needs it
		Embedding: EmbeddingSettings{},
		Server: ServerSettings{
			Host: "localhost",
			Port: 8787,
		},
	}
}

// DefaultDetectionSettings returns the built-in detection parameters.
func DefaultDetectionSettings() DetectionSettings {
	return DetectionSettings{
		Threshold:            DefaultThreshold,
		Whitelist:            DefaultWhitelist(),
		SemanticChunkSize:    DefaultSemanticChunkSize,
		SemanticChunkOverlap: DefaultSemanticChunkOverlap,
		MaxConcurrency:       DefaultMaxConcurrency,
		QueryTimeout:         DefaultQueryTimeout,
	}
}

// AllVectorBackends returns all available vector backends.
func AllVectorBackends() []VectorBackend {
	return []VectorBackend{
		VectorBackendUpstash,
		VectorBackendLocal,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// ChunkerConfig holds chunker pipeline configuration.
// Uses generic map-based config so new chunkers can be added
// without modifying this struct.
type ChunkerConfig struct {
	// Chunkers is the ordered list of chunker names to run.
	Chunkers []string

	// ChunkerConfigs holds per-chunker configuration as generic maps.
	ChunkerConfigs map[string]map[string]any
}

// GetChunkerConfig returns config for a specific chunker, or nil if not set.
func (c *ChunkerConfig) GetChunkerConfig(name string) map[string]any {
	if c.ChunkerConfigs == nil {
		return nil
	}
	return c.ChunkerConfigs[name]
}

// ChunkerConfigFor derives the chunker pipeline from detection settings.
// Word chunks always come first so they win ties during aggregation.
func ChunkerConfigFor(d DetectionSettings) ChunkerConfig {
	return ChunkerConfig{
		Chunkers: []string{"word", "semantic"},
		ChunkerConfigs: map[string]map[string]any{
			"semantic": {
				"chunk_size": d.SemanticChunkSize,
				"overlap":    d.SemanticChunkOverlap,
			},
		},
	}
}
