// Package tui provides an interactive terminal checker for messages.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/profanity/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Detection scores messages.
	Detection driving.DetectionService

	// Settings supplies the threshold and backend shown in the status bar. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Detection == nil {
		return ErrMissingDetectionService
	}
	return nil
}
