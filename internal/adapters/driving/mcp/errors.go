// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants check messages for profanity and inspect the active
// detection settings.
package mcp

import "errors"

// ErrMissingDetectionService is returned when the detection service is not provided.
var ErrMissingDetectionService = errors.New("mcp: detection service is required")
