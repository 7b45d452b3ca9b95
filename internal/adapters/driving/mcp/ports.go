package mcp

import (
	"github.com/custodia-labs/profanity/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Detection scores messages.
	Detection driving.DetectionService

	// Settings exposes the active configuration. Optional.
	Settings driving.SettingsService

	// Reference reports the local index size. Optional.
	Reference driving.ReferenceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Detection == nil {
		return ErrMissingDetectionService
	}
	return nil
}
