package driving

import "github.com/custodia-labs/profanity/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetThreshold updates the profanity threshold.
	SetThreshold(threshold float64) error

	// SetWhitelist replaces the whitelist.
	SetWhitelist(words []string) error

	// SetVectorIndex configures the vector backend.
	SetVectorIndex(backend domain.VectorBackend, url, token string) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks if current settings are valid for the configured backend.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
	ValidateEmbeddingConfig() error
}
