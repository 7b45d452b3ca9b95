package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSettingsShow(t *testing.T) {
	settings := newMockSettingsService()
	settings.settings.VectorIndex.URL = "https://example.upstash.io"
	settings.settings.VectorIndex.Token = "secret-token-value"
	testServices(t, nil, settings, nil)

	out, err := executeCommand(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Threshold: 0.86")
	assert.Contains(t, out, "Whitelist: swear")
	assert.Contains(t, out, "Upstash Vector (hosted)")
	assert.Contains(t, out, "URL: https://example.upstash.io")
	assert.Contains(t, out, "Token: secr...alue")
	assert.NotContains(t, out, "secret-token-value")
	assert.Contains(t, out, "Address: localhost:8787")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_ValidationWarning(t *testing.T) {
	settings := newMockSettingsService()
	settings.validateErr = errors.New("vector index url is required")
	testServices(t, nil, settings, nil)

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: vector index url is required")
}

func TestSettingsThreshold(t *testing.T) {
	settings := newMockSettingsService()
	testServices(t, nil, settings, nil)

	out, err := executeCommand(t, "", "settings", "threshold", "0.9")

	require.NoError(t, err)
	assert.InDelta(t, 0.9, settings.settings.Detection.Threshold, 1e-9)
	assert.Contains(t, out, "Threshold set to: 0.9")

	_, err = executeCommand(t, "", "settings", "threshold", "high")
	assert.Error(t, err)
}

func TestSettingsWhitelist(t *testing.T) {
	settings := newMockSettingsService()
	testServices(t, nil, settings, nil)

	out, err := executeCommand(t, "", "settings", "whitelist", "swear", "darn")
	require.NoError(t, err)
	assert.Equal(t, []string{"swear", "darn"}, settings.settings.Detection.Whitelist)
	assert.Contains(t, out, "Whitelist set to: swear, darn")

	out, err = executeCommand(t, "", "settings", "whitelist", "--clear")
	require.NoError(t, err)
	assert.Empty(t, settings.settings.Detection.Whitelist)
	assert.Contains(t, out, "Whitelist cleared.")

	_, err = executeCommand(t, "", "settings", "whitelist")
	assert.Error(t, err)
}

func TestSettingsVector_Upstash(t *testing.T) {
	settings := newMockSettingsService()
	testServices(t, nil, settings, nil)

	out, err := executeCommand(t, "token-from-stdin\n",
		"settings", "vector", "--backend", "upstash", "--url", "https://example.upstash.io")

	require.NoError(t, err)
	assert.Equal(t, domain.VectorBackendUpstash, settings.settings.VectorIndex.Backend)
	assert.Equal(t, "https://example.upstash.io", settings.settings.VectorIndex.URL)
	assert.Equal(t, "token-from-stdin", settings.settings.VectorIndex.Token)
	assert.Contains(t, out, "Vector backend set to: Upstash Vector (hosted)")
}

func TestSettingsVector_LocalNeedsEmbedding(t *testing.T) {
	settings := newMockSettingsService()
	testServices(t, nil, settings, nil)

	out, err := executeCommand(t, "", "settings", "vector", "--backend", "local")

	require.NoError(t, err)
	assert.Equal(t, domain.VectorBackendLocal, settings.settings.VectorIndex.Backend)
	assert.Contains(t, out, "requires an embedding provider")
}

func TestSettingsVector_UnknownBackend(t *testing.T) {
	testServices(t, nil, newMockSettingsService(), nil)

	_, err := executeCommand(t, "", "settings", "vector", "--backend", "pinecone")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestSettingsEmbedding(t *testing.T) {
	settings := newMockSettingsService()
	testServices(t, nil, settings, nil)

	// Ollama with the default model.
	out, err := executeCommand(t, "1\n\n", "settings", "embedding")

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.settings.Embedding.Model)
	assert.Contains(t, out, "OK")
}

func TestSettingsEmbedding_OpenAIRequiresKey(t *testing.T) {
	testServices(t, nil, newMockSettingsService(), nil)

	_, err := executeCommand(t, "2\n\n\n", "settings", "embedding")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestSettingsEmbedding_ValidationFails(t *testing.T) {
	settings := newMockSettingsService()
	settings.embedErr = errors.New("connection refused")
	testServices(t, nil, settings, nil)

	out, err := executeCommand(t, "1\n\n", "settings", "embedding")

	require.Error(t, err)
	assert.Contains(t, out, "FAILED: connection refused")
}

func TestSettingsWizard(t *testing.T) {
	settings := newMockSettingsService()
	testServices(t, nil, settings, nil)

	// Upstash backend, URL, token, threshold.
	input := "1\nhttps://example.upstash.io\ntoken\n0.75\n"
	out, err := executeCommand(t, input, "settings", "wizard")

	require.NoError(t, err)
	assert.Equal(t, domain.VectorBackendUpstash, settings.settings.VectorIndex.Backend)
	assert.Equal(t, "https://example.upstash.io", settings.settings.VectorIndex.URL)
	assert.Equal(t, "token", settings.settings.VectorIndex.Token)
	assert.InDelta(t, 0.75, settings.settings.Detection.Threshold, 1e-9)
	assert.Contains(t, out, "Step 2: Embedding Provider (skipped)")
	assert.Contains(t, out, "All settings are valid and saved.")
}

func TestSettingsWizard_LocalBackend(t *testing.T) {
	settings := newMockSettingsService()
	testServices(t, nil, settings, nil)

	// Local backend, Ollama, default model, keep threshold.
	out, err := executeCommand(t, "2\n1\n\n\n", "settings", "wizard")

	require.NoError(t, err)
	assert.Equal(t, domain.VectorBackendLocal, settings.settings.VectorIndex.Backend)
	assert.Equal(t, domain.AIProviderOllama, settings.settings.Embedding.Provider)
	assert.InDelta(t, domain.DefaultThreshold, settings.settings.Detection.Threshold, 1e-9)
	assert.Contains(t, out, "Step 2: Configure Embedding Provider")
}

func TestSettings_NoService(t *testing.T) {
	testServices(t, nil, nil, nil)

	_, err := executeCommand(t, "", "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestValueOrUnset(t *testing.T) {
	assert.Equal(t, "(not set)", valueOrUnset(""))
	assert.Equal(t, "x", valueOrUnset("x"))
}
