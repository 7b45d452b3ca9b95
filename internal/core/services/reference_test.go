package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profanity/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// mockEmbedder implements driven.EmbeddingService using testify/mock.
type mockEmbedder struct {
	mock.Mock
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if v := args.Get(0); v != nil {
		return v.([]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if v := args.Get(0); v != nil {
		return v.([][]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmbedder) Dimensions() int            { return 2 }
func (m *mockEmbedder) ModelName() string          { return "test-model" }
func (m *mockEmbedder) Ping(context.Context) error { return nil }
func (m *mockEmbedder) Close() error               { return nil }

func vectorsFor(texts []string) [][]float32 {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 1}
	}
	return out
}

func TestReferenceService_Import(t *testing.T) {
	store := memory.NewReferenceStore()
	embedder := &mockEmbedder{}
	embedder.On("EmbedBatch", mock.Anything, []string{"idiot", "moron"}).
		Return(vectorsFor([]string{"idiot", "moron"}), nil).Once()

	svc := NewReferenceService(store, embedder)
	n, err := svc.Import(context.Background(), []string{" idiot ", "", "moron", "idiot", "   "})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	embedder.AssertExpectations(t)

	entries, err := store.ListReferences(context.Background(), "test-model")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "test-model", e.Model)
		assert.Len(t, e.Embedding, 2)
	}

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReferenceService_Import_Batches(t *testing.T) {
	store := memory.NewReferenceStore()
	embedder := &mockEmbedder{}
	embedder.On("EmbedBatch", mock.Anything, []string{"a", "b"}).Return(vectorsFor([]string{"a", "b"}), nil).Once()
	embedder.On("EmbedBatch", mock.Anything, []string{"c"}).Return(vectorsFor([]string{"c"}), nil).Once()

	svc := NewReferenceService(store, embedder)
	svc.batchSize = 2

	n, err := svc.Import(context.Background(), []string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	embedder.AssertExpectations(t)
}

func TestReferenceService_Import_EmbedError(t *testing.T) {
	embedder := &mockEmbedder{}
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return(nil, errors.New("ollama down"))

	svc := NewReferenceService(memory.NewReferenceStore(), embedder)
	n, err := svc.Import(context.Background(), []string{"a"})

	assert.Zero(t, n)
	assert.ErrorContains(t, err, "ollama down")
}

func TestReferenceService_Import_MismatchedEmbeddings(t *testing.T) {
	embedder := &mockEmbedder{}
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return([][]float32{{1}}, nil)

	svc := NewReferenceService(memory.NewReferenceStore(), embedder)
	_, err := svc.Import(context.Background(), []string{"a", "b"})

	assert.ErrorContains(t, err, "got 1 embeddings for 2 texts")
}

func TestReferenceService_Import_NothingToDo(t *testing.T) {
	embedder := &mockEmbedder{}
	svc := NewReferenceService(memory.NewReferenceStore(), embedder)

	n, err := svc.Import(context.Background(), []string{"", "  "})

	require.NoError(t, err)
	assert.Zero(t, n)
	embedder.AssertNotCalled(t, "EmbedBatch", mock.Anything, mock.Anything)
}

func TestReferenceService_NoEmbedder(t *testing.T) {
	svc := NewReferenceService(memory.NewReferenceStore(), nil)

	_, err := svc.Import(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	_, err = svc.Count(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
