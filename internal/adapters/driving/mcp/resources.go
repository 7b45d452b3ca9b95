package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for profanity resources.
	uriScheme = "profanity://"

	settingsURI   = uriScheme + "settings"
	indexStatsURI = uriScheme + "index/stats"
)

// settingsInfo is the public view of the active settings. Credentials are omitted.
type settingsInfo struct {
	Threshold         float64  `json:"threshold"`
	Whitelist         []string `json:"whitelist"`
	SemanticChunkSize int      `json:"semantic_chunk_size"`
	SemanticOverlap   int      `json:"semantic_chunk_overlap"`
	MaxConcurrency    int      `json:"max_concurrency"`
	QueryTimeoutMS    int64    `json:"query_timeout_ms"`
	VectorBackend     string   `json:"vector_backend"`
	EmbeddingProvider string   `json:"embedding_provider,omitempty"`
	EmbeddingModel    string   `json:"embedding_model,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         settingsURI,
		Name:        "settings",
		Description: "Active detection settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         indexStatsURI,
		Name:        "index-stats",
		Description: "Number of reference entries in the local vector index",
		MIMEType:    "application/json",
	}, s.handleIndexStatsResource)
}

// handleSettingsResource returns the active settings without credentials.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	info := settingsInfo{
		Threshold:         settings.Detection.Threshold,
		Whitelist:         settings.Detection.Whitelist,
		SemanticChunkSize: settings.Detection.SemanticChunkSize,
		SemanticOverlap:   settings.Detection.SemanticChunkOverlap,
		MaxConcurrency:    settings.Detection.MaxConcurrency,
		QueryTimeoutMS:    settings.Detection.QueryTimeout.Milliseconds(),
		VectorBackend:     settings.VectorIndex.Backend.String(),
	}
	if settings.VectorIndex.Backend.RequiresEmbedding() {
		info.EmbeddingProvider = settings.Embedding.Provider.String()
		info.EmbeddingModel = settings.Embedding.Model
	}

	return jsonResult(req.Params.URI, info)
}

// handleIndexStatsResource returns the local reference count.
func (s *Server) handleIndexStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reference == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	count, err := s.ports.Reference.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting references: %w", err)
	}

	return jsonResult(req.Params.URI, map[string]int{"references": count})
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
