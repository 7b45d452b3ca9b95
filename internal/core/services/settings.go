package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
	"github.com/custodia-labs/profanity/internal/core/ports/driving"
	"github.com/custodia-labs/profanity/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyThreshold         = "detection.threshold"
	keyWhitelist         = "detection.whitelist"
	keyChunkSize         = "detection.semantic_chunk_size"
	keyChunkOverlap      = "detection.semantic_chunk_overlap"
	keyMaxConcurrency    = "detection.max_concurrency"
	keyQueryTimeoutMS    = "detection.query_timeout_ms"
	keyVectorBackend     = "vector_index.backend"
	keyVectorURL         = "vector_index.url"
	keyVectorToken       = "vector_index.token"
	keyVectorRPS         = "vector_index.requests_per_second"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyServerHost        = "server.host"
	keyServerPort        = "server.port"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// SettingsService manages application settings.
// Stored values come from the ConfigStore; overlays such as environment
// variables are applied on read and never persisted.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	overlays    []driven.SettingsOverlay
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// AddOverlay registers a higher-priority settings source.
// Overlays are applied in registration order.
func (s *SettingsService) AddOverlay(overlay driven.SettingsOverlay) {
	s.overlays = append(s.overlays, overlay)
}

// Get retrieves current application settings with overlays applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()

	for _, o := range s.overlays {
		if err := o.Apply(settings); err != nil {
			return nil, fmt.Errorf("apply %s overlay: %w", o.Name(), err)
		}
	}

	return settings, nil
}

// stored reads settings from the config store, falling back to defaults.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Detection: domain.DetectionSettings{
			Threshold:            s.getFloat(keyThreshold, defaults.Detection.Threshold),
			Whitelist:            s.getStringSlice(keyWhitelist, defaults.Detection.Whitelist),
			SemanticChunkSize:    s.getInt(keyChunkSize, defaults.Detection.SemanticChunkSize),
			SemanticChunkOverlap: s.getIntAllowZero(keyChunkOverlap, defaults.Detection.SemanticChunkOverlap),
			MaxConcurrency:       s.getInt(keyMaxConcurrency, defaults.Detection.MaxConcurrency),
			QueryTimeout: time.Duration(
				s.getInt(keyQueryTimeoutMS, int(defaults.Detection.QueryTimeout/time.Millisecond)),
			) * time.Millisecond,
		},
		VectorIndex: domain.VectorIndexSettings{
			Backend:           s.getBackend(defaults.VectorIndex.Backend),
			URL:               s.configStore.GetString(keyVectorURL),
			Token:             s.configStore.GetString(keyVectorToken),
			RequestsPerSecond: s.getFloat(keyVectorRPS, defaults.VectorIndex.RequestsPerSecond),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		Server: domain.ServerSettings{
			Host: s.getString(keyServerHost, defaults.Server.Host),
			Port: s.getInt(keyServerPort, defaults.Server.Port),
		},
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyThreshold, settings.Detection.Threshold},
		{keyWhitelist, settings.Detection.Whitelist},
		{keyChunkSize, settings.Detection.SemanticChunkSize},
		{keyChunkOverlap, settings.Detection.SemanticChunkOverlap},
		{keyMaxConcurrency, settings.Detection.MaxConcurrency},
		{keyQueryTimeoutMS, int(settings.Detection.QueryTimeout / time.Millisecond)},
		{keyVectorBackend, settings.VectorIndex.Backend.String()},
		{keyVectorURL, settings.VectorIndex.URL},
		{keyVectorRPS, settings.VectorIndex.RequestsPerSecond},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyServerHost, settings.Server.Host},
		{keyServerPort, settings.Server.Port},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Secrets are only written when present so an empty form never erases them.
	if settings.VectorIndex.Token != "" {
		if err := s.configStore.Set(keyVectorToken, settings.VectorIndex.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyVectorToken, err)
		}
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}

	return nil
}

// SetThreshold updates the profanity threshold.
func (s *SettingsService) SetThreshold(threshold float64) error {
	if threshold < -1 || threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [-1, 1]", domain.ErrInvalidSettings, threshold)
	}

	settings := s.stored()
	settings.Detection.Threshold = threshold
	return s.Save(settings)
}

// SetWhitelist replaces the whitelist.
// Words are lowercased, trimmed and de-duplicated.
func (s *SettingsService) SetWhitelist(words []string) error {
	settings := s.stored()
	settings.Detection.Whitelist = domain.NewWhitelist(words...).Words()
	return s.Save(settings)
}

// SetVectorIndex configures the vector backend.
func (s *SettingsService) SetVectorIndex(backend domain.VectorBackend, url, token string) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: invalid vector backend: %s", domain.ErrInvalidSettings, backend)
	}
	if backend == domain.VectorBackendUpstash && url == "" {
		return fmt.Errorf("%w: URL required for %s", domain.ErrInvalidSettings, backend)
	}

	settings := s.stored()
	settings.VectorIndex.Backend = backend
	settings.VectorIndex.URL = strings.TrimRight(url, "/")
	if token != "" {
		settings.VectorIndex.Token = token
	}
	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidSettings, provider)
	}
	if !lo.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidSettings, provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidSettings, provider)
	}

	settings := s.stored()
	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = defaultOllamaBaseURL
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings are valid for the configured backend.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.ValidateSettings(settings)
}

// ValidateSettings checks field ranges and backend requirements of settings.
func (s *SettingsService) ValidateSettings(settings *domain.AppSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
				return fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			})
			return fmt.Errorf("%w: %s", domain.ErrInvalidSettings, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", domain.ErrInvalidSettings, err)
	}

	if !settings.VectorIndex.IsConfigured() {
		return fmt.Errorf(
			"%w: vector backend %q requires a URL and token (set VECTOR_URL and VECTOR_TOKEN)",
			domain.ErrInvalidSettings, settings.VectorIndex.Backend.Description(),
		)
	}

	if settings.VectorIndex.Backend.RequiresEmbedding() && !settings.Embedding.IsConfigured() {
		return fmt.Errorf(
			"%w: vector backend %q requires embedding provider to be configured",
			domain.ErrInvalidSettings, settings.VectorIndex.Backend.Description(),
		)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getIntAllowZero treats an explicit zero as a value rather than "unset".
func (s *SettingsService) getIntAllowZero(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat64(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getBackend(defaultVal domain.VectorBackend) domain.VectorBackend {
	val := s.configStore.GetString(keyVectorBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.VectorBackend(val)
	if !backend.IsValid() {
		logger.Warn("ignoring unknown vector backend %q, using %s", val, defaultVal)
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
