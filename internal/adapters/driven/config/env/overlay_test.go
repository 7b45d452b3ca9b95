package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

func newTestOverlay(vars ...string) *Overlay {
	return &Overlay{environ: func() []string { return vars }}
}

func TestOverlay_Name(t *testing.T) {
	assert.Equal(t, "env", New().Name())
}

func TestOverlay_Apply_NoVariables(t *testing.T) {
	settings := domain.DefaultAppSettings()
	want := domain.DefaultAppSettings()

	require.NoError(t, newTestOverlay().Apply(&settings))
	assert.Equal(t, want, settings)
}

func TestOverlay_Apply_DetectionAndVector(t *testing.T) {
	settings := domain.DefaultAppSettings()

	overlay := newTestOverlay(
		"PROFANITY_THRESHOLD=0.9",
		"WHITELIST=dumb, heck ,,",
		"VECTOR_URL=https://example.upstash.io/",
		"VECTOR_TOKEN=tok",
	)
	require.NoError(t, overlay.Apply(&settings))

	assert.Equal(t, 0.9, settings.Detection.Threshold)
	assert.Equal(t, []string{"dumb", "heck"}, settings.Detection.Whitelist)
	assert.Equal(t, "https://example.upstash.io", settings.VectorIndex.URL)
	assert.Equal(t, "tok", settings.VectorIndex.Token)
	assert.Equal(t, domain.VectorBackendUpstash, settings.VectorIndex.Backend)
}

func TestOverlay_Apply_Server(t *testing.T) {
	settings := domain.DefaultAppSettings()

	require.NoError(t, newTestOverlay("PROFANITY_HOST=0.0.0.0", "PORT=9090").Apply(&settings))
	assert.Equal(t, "0.0.0.0", settings.Server.Host)
	assert.Equal(t, 9090, settings.Server.Port)
}

func TestOverlay_Apply_EmbeddingProviderScoped(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Embedding.Provider = domain.AIProviderOllama

	overlay := newTestOverlay(
		"OPENAI_API_KEY=sk-test",
		"OLLAMA_HOST=http://ollama:11434",
		"PROFANITY_EMBEDDING_MODEL=all-minilm",
	)
	require.NoError(t, overlay.Apply(&settings))

	assert.Empty(t, settings.Embedding.APIKey)
	assert.Equal(t, "http://ollama:11434", settings.Embedding.BaseURL)
	assert.Equal(t, "all-minilm", settings.Embedding.Model)

	settings.Embedding.Provider = domain.AIProviderOpenAI
	require.NoError(t, overlay.Apply(&settings))
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
}

func TestOverlay_Apply_InvalidThreshold(t *testing.T) {
	settings := domain.DefaultAppSettings()

	err := newTestOverlay("PROFANITY_THRESHOLD=high").Apply(&settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
	assert.Equal(t, domain.DefaultThreshold, settings.Detection.Threshold)
}

func TestOverlay_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PROFANITY_THRESHOLD", "0.5")
	settings := domain.DefaultAppSettings()

	require.NoError(t, New().Apply(&settings))
	assert.Equal(t, 0.5, settings.Detection.Threshold)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"swear", []string{"swear"}},
		{"a,b", []string{"a", "b"}},
		{" a , , b ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("VECTOR_TOKEN=from-file\nVECTOR_URL=https://file\n"), 0600))

	t.Setenv("VECTOR_URL", "https://process")
	t.Setenv("VECTOR_TOKEN", "")
	require.NoError(t, os.Unsetenv("VECTOR_TOKEN"))

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-file", os.Getenv("VECTOR_TOKEN"))
	assert.Equal(t, "https://process", os.Getenv("VECTOR_URL"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
