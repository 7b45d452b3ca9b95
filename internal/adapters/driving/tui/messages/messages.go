// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"time"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// CheckRequested is a command to score a message.
type CheckRequested struct {
	Message string
}

// CheckCompleted carries a verdict, or the failure, back to the model.
type CheckCompleted struct {
	Message  string
	Verdict  *domain.Verdict
	Err      error
	Duration time.Duration
}

// SettingsLoaded carries the active settings shown in the header.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}
