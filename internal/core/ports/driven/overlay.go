package driven

import "github.com/custodia-labs/profanity/internal/core/domain"

// SettingsOverlay applies a higher-priority configuration source on top of
// stored settings, such as environment variables.
// Overlaid values are never written back to the config file.
type SettingsOverlay interface {
	// Name identifies the source for logging.
	Name() string

	// Apply overrides fields of settings that the source defines.
	Apply(settings *domain.AppSettings) error
}
