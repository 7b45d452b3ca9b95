package tui

import "errors"

// ErrMissingDetectionService is returned when the detection service is not provided.
var ErrMissingDetectionService = errors.New("tui: detection service is required")
