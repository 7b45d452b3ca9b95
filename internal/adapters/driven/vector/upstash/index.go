// Package upstash provides a vector index adapter for the Upstash Vector REST API.
package upstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultTimeout = 10 * time.Second

	// metadataTextKey holds the indexed reference text in each vector's metadata.
	metadataTextKey = "text"

	// maxErrorBody caps how much of an error body ends up in error messages.
	maxErrorBody = 512
)

// Config holds configuration for the Upstash index.
type Config struct {
	// URL is the index REST URL, e.g. https://xxx-us1-vector.upstash.io.
	URL string

	// Token is the REST bearer token.
	Token string

	// RequestsPerSecond throttles outbound queries; zero disables throttling.
	RequestsPerSecond float64

	// Timeout is the HTTP client timeout (default: 10s).
	// Per-query deadlines come from the request context.
	Timeout time.Duration
}

// Index queries an Upstash Vector index that embeds text server-side.
type Index struct {
	client  *http.Client
	url     string
	token   string
	limiter *RateLimiter
}

type queryRequest struct {
	Data            string `json:"data"`
	TopK            int    `json:"topK"`
	IncludeMetadata bool   `json:"includeMetadata"`
}

type queryResult struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type queryResponse struct {
	Result []queryResult `json:"result"`
	Error  string        `json:"error,omitempty"`
}

// New creates a new Upstash index client.
func New(cfg Config) (*Index, error) {
	if cfg.URL == "" || cfg.Token == "" {
		return nil, fmt.Errorf("%w: upstash URL and token are required", domain.ErrVectorIndexUnavailable)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	idx := &Index{
		client: &http.Client{Timeout: cfg.Timeout},
		url:    strings.TrimRight(cfg.URL, "/"),
		token:  cfg.Token,
	}
	if cfg.RequestsPerSecond > 0 {
		idx.limiter = NewRateLimiter(cfg.RequestsPerSecond)
	}
	return idx, nil
}

// Name returns the backend name.
func (i *Index) Name() string {
	return "upstash"
}

// Query sends one top-1 query with metadata for text.
// Returns nil when the index holds no vectors.
func (i *Index) Query(ctx context.Context, text string) (*domain.VectorMatch, error) {
	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: upstash: rate limit wait: %w", domain.ErrExternalService, err)
		}
	}

	body, err := json.Marshal(queryRequest{Data: text, TopK: 1, IncludeMetadata: true})
	if err != nil {
		return nil, fmt.Errorf("upstash: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url+"/query-data", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("upstash: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+i.token)

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: upstash: %w", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: upstash: read response: %w", domain.ErrExternalService, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests && i.limiter != nil {
		i.limiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
	}

	var out queryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: upstash: status %d: %s",
				domain.ErrExternalService, resp.StatusCode, truncate(raw))
		}
		return nil, fmt.Errorf("%w: upstash: decode response: %w", domain.ErrExternalService, err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%w: upstash: status %d: %s", domain.ErrExternalService, resp.StatusCode, out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstash: status %d", domain.ErrExternalService, resp.StatusCode)
	}

	if len(out.Result) == 0 {
		return nil, nil
	}

	top := out.Result[0]
	match := &domain.VectorMatch{Score: top.Score}
	if s, ok := top.Metadata[metadataTextKey].(string); ok {
		match.Text = s
	}
	return match, nil
}

// Close releases idle connections.
func (i *Index) Close() error {
	i.client.CloseIdleConnections()
	return nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
