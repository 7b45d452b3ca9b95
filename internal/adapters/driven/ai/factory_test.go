package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

func ollamaServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		case "/api/embed":
			_, _ = w.Write([]byte(`{"embeddings":[[1,0]]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateEmbeddingService(t *testing.T) {
	svc, err := CreateEmbeddingService(nil)
	assert.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.AIProviderOllama})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", svc.ModelName())

	svc, err = CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-large",
		APIKey:   "sk",
	})
	require.NoError(t, err)
	assert.Equal(t, 3072, svc.Dimensions())

	// OpenAI without a key is not configured.
	svc, err = CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI})
	assert.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateVectorIndex_Upstash(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.VectorIndex.URL = "https://x.upstash.io"
	settings.VectorIndex.Token = "tok"

	res, err := CreateVectorIndex(&settings, t.TempDir())
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, "upstash", res.VectorIndex.Name())
	assert.Nil(t, res.EmbeddingService)
}

func TestCreateVectorIndex_UpstashMissingCredentials(t *testing.T) {
	settings := domain.DefaultAppSettings()

	_, err := CreateVectorIndex(&settings, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
	assert.ErrorContains(t, err, "VECTOR_URL")
}

func TestCreateVectorIndex_Local(t *testing.T) {
	srv := ollamaServer(t)

	settings := domain.DefaultAppSettings()
	settings.VectorIndex.Backend = domain.VectorBackendLocal
	settings.Embedding = domain.EmbeddingSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL}

	res, err := CreateVectorIndex(&settings, t.TempDir())
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, "local", res.VectorIndex.Name())
	assert.NotNil(t, res.ReferenceStore)
	assert.NotNil(t, res.EmbeddingService)
}

func TestCreateVectorIndex_LocalWithoutEmbedding(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.VectorIndex.Backend = domain.VectorBackendLocal

	_, err := CreateVectorIndex(&settings, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestCreateVectorIndex_UnknownBackend(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.VectorIndex.Backend = "pinecone"

	_, err := CreateVectorIndex(&settings, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
